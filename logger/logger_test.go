package logger

import (
	"testing"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

func TestGetLogs(t *testing.T) {
	t.Setenv("CC_LOG_FOLDER", t.TempDir())
	InitLogger(logging.DEBUG)
	defer CloseLogger()

	Debug("first")
	Infof("second %d", 2)
	Warning("third")
	Error("fourth")

	logs := GetLogs(10, "DEBUG")
	assert.GreaterOrEqual(t, len(logs), 4)
	assert.Contains(t, logs[0], "fourth")
	assert.Contains(t, logs[1], "third")

	warnings := GetLogs(10, "WARNING")
	for _, l := range warnings {
		assert.NotContains(t, l, "second")
	}
	assert.Len(t, GetLogs(1, "DEBUG"), 1)
}
