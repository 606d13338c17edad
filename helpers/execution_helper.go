package helpers

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Elapsed logs how long the surrounding function took:
//
//	defer helpers.Elapsed(logEntry)()
func Elapsed(l *logrus.Entry) func() {
	start := time.Now()
	return func() {
		l.Infof("function took %v", time.Since(start))
	}
}
