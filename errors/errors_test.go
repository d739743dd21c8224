package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{
			New(PhaseParse, KindSyntax, "unexpected token"),
			"[parse] syntax: unexpected token",
		},
		{
			&Error{Phase: PhaseTransform, Kind: KindInvariant, Func: "main", Detail: "break outside of a loop"},
			"[transform] invariant in function main: break outside of a loop",
		},
		{
			Wrap(PhaseEncode, KindOverflow, "body too large", fmt.Errorf("limit")),
			"[encode] overflow: body too large (caused by: limit)",
		},
		{
			&Error{Phase: PhaseEncode, Kind: KindUnsupported},
			"[encode] unsupported",
		},
	}
	for _, tc := range tests {
		if got := tc.err.Error(); got != tc.want {
			t.Errorf("got %q, want %q", got, tc.want)
		}
	}
}

func TestErrorIs(t *testing.T) {
	err := New(PhaseTransform, KindInvariant, "detail")
	if !stderrors.Is(err, &Error{Phase: PhaseTransform, Kind: KindInvariant}) {
		t.Error("same phase and kind did not match")
	}
	if stderrors.Is(err, &Error{Phase: PhaseEncode, Kind: KindInvariant}) {
		t.Error("different phase matched")
	}
	if stderrors.Is(err, &Error{Phase: PhaseTransform, Kind: KindSyntax}) {
		t.Error("different kind matched")
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(PhaseParse, KindSyntax, "wrapped", cause)
	if !stderrors.Is(err, cause) {
		t.Error("cause not reachable through Unwrap")
	}
	if New(PhaseParse, KindSyntax, "bare").Unwrap() != nil {
		t.Error("bare error has a cause")
	}
}
