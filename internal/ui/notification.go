package ui

import (
	"fmt"
	"os/exec"
	"strings"
)

// syslog priorities as understood by logger(1)
const (
	PriorityInfo    = "daemon.info"
	PriorityWarning = "daemon.warning"
	PriorityCrit    = "daemon.crit"
)

func NotifyInfo(title, text string) {
	NotifySend(PriorityInfo, title, text, false)
}

func NotifyWarn(title, text string) {
	NotifySend(PriorityWarning, title, text, false)
}

// NotifyError logs to syslog and broadcasts the message to all terminals
func NotifyError(title, text string) {
	NotifySend(PriorityCrit, title, text, true)
}

func NotifySend(priority, title, text string, broadcast bool) {
	message := fmt.Sprintf("%s: %s", title, text)

	cmd := exec.Command("logger", "-t", "onlp2go", "-p", priority, message)
	if err := cmd.Run(); err != nil {
		Warning("Cannot send notification to syslog: %v", err)
	}

	if !broadcast {
		return
	}

	cmd = exec.Command("wall")
	cmd.Stdin = strings.NewReader("onlp2go " + message + "\n")
	if err := cmd.Run(); err != nil {
		Error("Error broadcasting notification: %v", err)
	}
}

func ErrorAndNotify(title string, format string, a ...interface{}) {
	text := fmt.Sprintf(format, a...)
	Error("%s: %s", title, text)
	NotifyError(title, text)
}

func WarningAndNotify(title string, format string, a ...interface{}) {
	text := fmt.Sprintf(format, a...)
	Warning("%s: %s", title, text)
	NotifyWarn(title, text)
}
