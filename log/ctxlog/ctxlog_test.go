package ctxlog

import (
	"context"
	"testing"

	"github.com/micromdm/nanoinv/log"
)

type namedLogger struct {
	log.Logger
	name string
}

func TestLogger(t *testing.T) {
	fallback := &namedLogger{Logger: log.NopLogger, name: "fallback"}
	stored := &namedLogger{Logger: log.NopLogger, name: "stored"}

	if have := Logger(context.Background(), fallback); have != fallback {
		t.Errorf("expected fallback logger, have: %v", have)
	}

	ctx := NewContext(context.Background(), stored)
	if have := Logger(ctx, fallback); have != stored {
		t.Errorf("expected stored logger, have: %v", have)
	}

	if have, want := Logger(context.Background(), nil), log.NopLogger; have != want {
		t.Errorf("want: %v, have: %v", want, have)
	}

	if have := NewContext(ctx, nil); have != ctx {
		t.Error("expected context to be unchanged for nil logger")
	}
}
