// Package klog centralizes the engine's logrus setup so every package
// derives its logger the same way, with a "component" field set.
package klog

import (
	"os"

	"github.com/sirupsen/logrus"
)

var base = newBase()

func newBase() *logrus.Logger {
	l := logrus.New()
	l.Out = os.Stderr
	l.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	if os.Getenv("KUSHDB_DEBUG") != "" {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}
	return l
}

// For returns a logger scoped to the named component, e.g. "skinner"
// or "filemanager".
func For(component string) logrus.FieldLogger {
	return base.WithField("component", component)
}

// SetLevel overrides the base logger's level, which starts at Debug
// when KUSHDB_DEBUG is set and at Info otherwise.
func SetLevel(level logrus.Level) {
	base.SetLevel(level)
}
