// internal/indicator/logled.go
package indicator

import "github.com/sirupsen/logrus"

// LogLED renders LED transitions as debug log lines, for hosts without
// a status LED.
type LogLED struct {
	log logrus.FieldLogger
	on  bool
}

func NewLogLED(log logrus.FieldLogger) *LogLED {
	return &LogLED{log: log}
}

func (l *LogLED) Set(on bool) error {
	if on != l.on {
		l.log.WithField("led", on).Debug("indicator")
	}
	l.on = on
	return nil
}
