// Package buildlib is the build-time library-loading op surface.
//
// It exists only while a compiler-flavored snapshot is being warmed up:
// the bootstrap script asks for aggregate build metadata (op_build_info),
// resolves working-directory and file-kind queries against fixed synthetic
// answers (op_cwd, op_exists, op_is_node_file, op_script_version; the build
// environment is not the target runtime environment, so no real filesystem
// state leaks in), and loads library text by specifier (op_load).
//
// Specifier grammar for op_load:
//
//   - the literal build specifier "asset:///bootstrap.ts" returns fixed
//     warm-up source text
//   - "asset:///lib.<name>.d.ts" resolves <name> against the externally
//     supplied library-path table, falling back to <DTSDir>/lib.<name>.d.ts,
//     and returns {data, version: "1", scriptKind: 3}
//   - anything else, or a matching name with no resolution, fails with a
//     named invalid_specifier error carrying the offending specifier
//
// None of these ops is reachable at ordinary runtime; the extension is only
// part of compiler-flavored compositions.
package buildlib
