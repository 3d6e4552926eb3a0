package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type countingLookup struct {
	teacher, subject uuid.UUID
	err              error
	calls            int
}

func (l *countingLookup) TeacherIDOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	l.calls++
	return l.teacher, l.err
}

func (l *countingLookup) SubjectIDOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	l.calls++
	return l.subject, l.err
}

func TestCachedGroupsWithoutRedisPassesThrough(t *testing.T) {
	next := &countingLookup{teacher: uuid.New(), subject: uuid.New()}
	c := NewCachedGroups(next, nil, 0)
	if c.TTL != DefaultGroupCacheTTL {
		t.Fatalf("TTL = %v", c.TTL)
	}

	gid := uuid.New()
	got, err := c.TeacherIDOf(context.Background(), gid)
	if err != nil || got != next.teacher {
		t.Fatalf("TeacherIDOf = %v, %v", got, err)
	}
	got, err = c.SubjectIDOf(context.Background(), gid)
	if err != nil || got != next.subject {
		t.Fatalf("SubjectIDOf = %v, %v", got, err)
	}
	if next.calls != 2 {
		t.Fatalf("calls = %d", next.calls)
	}
}

func TestCachedGroupsPropagatesLoadError(t *testing.T) {
	boom := errors.New("db down")
	c := NewCachedGroups(&countingLookup{err: boom}, nil, 0)
	if _, err := c.TeacherIDOf(context.Background(), uuid.New()); !errors.Is(err, boom) {
		t.Fatalf("expected unchanged error, got %v", err)
	}
}
