package loginlog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type FileLoggerSuite struct {
	suite.Suite
	path   string
	logger *FileLogger
	ctx    context.Context
}

func TestFileLoggerSuite(t *testing.T) {
	suite.Run(t, new(FileLoggerSuite))
}

func (s *FileLoggerSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "logs", "login.txt")
	s.logger = NewFileLogger(s.path)
	s.ctx = context.Background()
}

func (s *FileLoggerSuite) entry() Entry {
	return Entry{
		Time:       time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		Username:   "alice",
		Email:      "alice@example.com",
		RemoteAddr: "192.0.2.1",
		RemoteHost: "client.example.com",
	}
}

func (s *FileLoggerSuite) read() string {
	data, err := os.ReadFile(s.path)
	s.Require().NoError(err)
	return string(data)
}

func (s *FileLoggerSuite) TestRecordWritesHeaderAndLine() {
	s.Require().NoError(s.logger.Record(s.ctx, s.entry()))

	content := s.read()
	s.Contains(content, "TIME")
	s.Contains(content, "Username")
	s.Contains(content, "2024-01-01 12:00:00 | alice | alice@example.com | 192.0.2.1 (client.example.com)")
}

func (s *FileLoggerSuite) TestHeaderWrittenOnlyOnce() {
	s.Require().NoError(s.logger.Record(s.ctx, s.entry()))
	s.Require().NoError(s.logger.Record(s.ctx, s.entry()))

	content := s.read()
	s.Equal(1, strings.Count(content, "TIME"))
	s.Equal(2, strings.Count(content, "alice@example.com"))
}

func (s *FileLoggerSuite) TestConcurrentRecordsAllLand() {
	const writers = 10

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.NoError(s.logger.Record(s.ctx, s.entry()))
		}()
	}
	wg.Wait()

	content := s.read()
	s.Equal(writers, strings.Count(content, "alice@example.com"))
	s.Equal(1, strings.Count(content, "TIME"))
}

func TestMemoryRecorder(t *testing.T) {
	r := NewMemoryRecorder()

	e := Entry{Username: "alice", Email: "alice@example.com"}
	if err := r.Record(context.Background(), e); err != nil {
		t.Fatalf("record: %v", err)
	}

	entries := r.Entries()
	if len(entries) != 1 || entries[0].Username != "alice" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}
