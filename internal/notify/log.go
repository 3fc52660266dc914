package notify

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogSink reports failures to the service log. It is the default sink when no
// messaging backend is configured.
type LogSink struct {
	log *logrus.Logger
}

func NewLogSink(log *logrus.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Notify(_ context.Context, c Category) {
	s.log.WithField("category", c.Name).Warn(c.Message)
}
