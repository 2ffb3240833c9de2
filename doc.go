// Package clibind resolves and validates command-line option values. Each
// declared option owns a Driver that decides where its raw tokens come from
// (flag occurrences, an environment variable, an internal default), how
// repeats combine (scalar, accumulating list, boolean toggle, counter), and
// a Validator that converts a raw token into a typed value under choice,
// range, format or filesystem constraints.
//
// For example:
//  cmd := clibind.NewCommand("serve")
//  level, _ := clibind.IntRange(0, 9)
//  opt, _ := cmd.AddOption("level", clibind.Scalar(level, int64(3)), "-l", "--level")
//  opt.Env("SERVE_LEVEL")
//  cmd.AddOption("verbose", clibind.CountFlag(), "-v", "--verbose")
//  cmd.AddArgument("config", clibind.Scalar(clibind.FilePathValidator(), nil))
//  prog, _ := clibind.NewProgram("serve", "1.2.0", cmd)
//  prog.RunAndExit()
//
// Precedence is fixed: command line beats environment beats default. Help
// and version options halt the parse with their message and win over any
// validation failure in the same pass. Drivers and validators are immutable
// once the command is built, so one command table can serve concurrent
// parse passes.
package clibind
