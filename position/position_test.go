package position

import (
	"errors"
	"testing"
)

func TestNewPosFromNotation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		notation string
		want     Pos
		wantErr  error
	}{
		{
			name:     "ok 1",
			notation: "e4",
			want:     Pos(28),
			wantErr:  nil,
		},
		{
			name:     "ok 2",
			notation: "h8",
			want:     Pos(63),
			wantErr:  nil,
		},
		{
			name:     "ok 3",
			notation: "a1",
			want:     Pos(0),
			wantErr:  nil,
		},
		{
			name:     "ok 4",
			notation: "d6",
			want:     D6,
			wantErr:  nil,
		},
		{
			name:     "bad 1",
			notation: "",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 2",
			notation: "a",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 3",
			notation: "4",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 4",
			notation: "m4",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 5",
			notation: "e9",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 6",
			notation: "e0",
			wantErr:  ErrInvalidNotation,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := NewPosFromNotation(tt.notation)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("unexpected error: got=%v want=%v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("unexpected result: got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestPosComponents(t *testing.T) {
	t.Parallel()
	tests := []struct {
		pos      Pos
		wantX    Pos
		wantY    Pos
		wantNote string
	}{
		{pos: A1, wantX: FileA, wantY: Rank1, wantNote: "a1"},
		{pos: E4, wantX: FileE, wantY: Rank4, wantNote: "e4"},
		{pos: H8, wantX: FileH, wantY: Rank8, wantNote: "h8"},
		{pos: C7, wantX: FileC, wantY: Rank7, wantNote: "c7"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.wantNote, func(t *testing.T) {
			t.Parallel()
			if got := tt.pos.X(); got != tt.wantX {
				t.Errorf("unexpected x: got=%d want=%d", got, tt.wantX)
			}
			if got := tt.pos.Y(); got != tt.wantY {
				t.Errorf("unexpected y: got=%d want=%d", got, tt.wantY)
			}
			if got := NewPos(tt.wantX, tt.wantY); got != tt.pos {
				t.Errorf("unexpected pos: got=%d want=%d", got, tt.pos)
			}
			if got := tt.pos.Notation(); got != tt.wantNote {
				t.Errorf("unexpected notation: got=%s want=%s", got, tt.wantNote)
			}
		})
	}
}

func TestInvalidPos(t *testing.T) {
	t.Parallel()
	if Invalid.IsValid() {
		t.Error("unexpected valid sentinel")
	}
	if got := Invalid.String(); got != "-" {
		t.Errorf("unexpected string: got=%s want=-", got)
	}
	if got := Pos(64).Notation(); got != "" {
		t.Errorf("unexpected notation: got=%s want=empty", got)
	}
}
