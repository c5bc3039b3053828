package ui

import (
	"io"
	"os"

	"github.com/pterm/pterm"
	"gopkg.in/natefinch/lumberjack.v2"
)

var fileSink *lumberjack.Logger

func SetDebugEnabled(enabled bool) {
	pterm.PrintDebugMessages = enabled
}

// EnableFileOutput duplicates all output into a size rotated log file.
func EnableFileOutput(path string, maxSizeMb int, maxBackups int) {
	if len(path) <= 0 {
		return
	}
	fileSink = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMb,
		MaxBackups: maxBackups,
		Compress:   true,
	}
	pterm.SetDefaultOutput(io.MultiWriter(os.Stdout, fileSink))
}

func CloseFileOutput() {
	if fileSink == nil {
		return
	}
	_ = fileSink.Close()
	fileSink = nil
	pterm.SetDefaultOutput(os.Stdout)
}

func Printf(format string, a ...interface{}) {
	pterm.Printf(format, a...)
}

func Printfln(format string, a ...interface{}) {
	pterm.Printfln(format, a...)
}

func Debug(format string, a ...interface{}) {
	pterm.Debug.Printfln(format, a...)
}

func Info(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

func Success(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

func Warning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

func Error(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

func Fatal(format string, a ...interface{}) {
	pterm.Fatal.Printfln(format, a...)
}

// FatalWithoutStacktrace prints the message and exits without the pterm stacktrace
func FatalWithoutStacktrace(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
	os.Exit(1)
}
