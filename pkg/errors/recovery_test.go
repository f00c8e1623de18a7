package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestRecover_WithPanic tests the Recover function when a panic occurs
func TestRecover_WithPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "NDHistogram.Increment")
		panic("coordinate 16 out of range [0, 16)")
	}

	err := testFunc()
	if err == nil {
		t.Fatal("Expected error from recovered panic, got nil")
	}

	var panicErr *PanicError
	if !errors.As(err, &panicErr) {
		t.Fatalf("Expected PanicError, got %T", err)
	}

	if panicErr.Operation != "NDHistogram.Increment" {
		t.Errorf("Expected operation 'NDHistogram.Increment', got '%s'", panicErr.Operation)
	}
	if panicErr.StackTrace == "" {
		t.Error("Expected non-empty stack trace")
	}

	expectedMsg := "panic in NDHistogram.Increment: coordinate 16 out of range [0, 16)"
	if panicErr.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, panicErr.Error())
	}
	if !strings.Contains(panicErr.String(), "Stack trace:") {
		t.Error("String() should include the stack trace")
	}
}

// TestRecover_WithoutPanic tests the Recover function when no panic occurs
func TestRecover_WithoutPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "TestOperation")
		return nil
	}

	if err := testFunc(); err != nil {
		t.Fatalf("Expected no error when no panic occurs, got: %v", err)
	}
}

// TestRecover_WrapsExistingError checks that an existing error is kept in the chain
func TestRecover_WrapsExistingError(t *testing.T) {
	sentinel := fmt.Errorf("original failure")
	testFunc := func() (err error) {
		defer Recover(&err, "TestOperation")
		err = sentinel
		panic("boom")
	}

	err := testFunc()
	if !errors.Is(err, sentinel) {
		t.Errorf("expected wrapped original error, got %v", err)
	}
	if !strings.Contains(err.Error(), "panic in TestOperation: boom") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestSafeExecute(t *testing.T) {
	panicValues := []interface{}{
		"unexpected nil image",
		errors.New("histogram size mismatch"),
		42,
	}

	for _, v := range panicValues {
		t.Run(fmt.Sprintf("%v", v), func(t *testing.T) {
			err := SafeExecute("leave-one-out", func() error { panic(v) })

			var panicErr *PanicError
			if !errors.As(err, &panicErr) {
				t.Fatalf("Expected PanicError, got %T: %v", err, err)
			}
			if !strings.HasPrefix(err.Error(), "panic in leave-one-out: ") {
				t.Errorf("unexpected message: %v", err)
			}
		})
	}

	t.Run("error panic unwraps", func(t *testing.T) {
		cause := errors.New("cause")
		err := SafeExecute("op", func() error { panic(cause) })
		if !errors.Is(err, cause) {
			t.Error("PanicError should unwrap to an error panic value")
		}
	})

	t.Run("plain error passes through", func(t *testing.T) {
		cause := errors.New("plain")
		if err := SafeExecute("op", func() error { return cause }); err != cause {
			t.Errorf("SafeExecute returned %v, want %v", err, cause)
		}
	})
}
