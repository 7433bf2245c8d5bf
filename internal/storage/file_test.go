package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

type FileSuite struct {
	suite.Suite
	dir   string
	store *File
}

func (s *FileSuite) SetupTest() {
	s.dir = s.T().TempDir()
	store, err := NewFile(s.dir)
	s.Require().NoError(err)
	s.store = store
}

func TestFileSuite(t *testing.T) {
	suite.Run(t, new(FileSuite))
}

func (s *FileSuite) TestDurability() {
	ctx := context.Background()

	s.Run("set writes a file named after the key", func() {
		s.Require().NoError(s.store.Set(ctx, KeyReports, []byte(`[]`)))
		_, err := os.Stat(filepath.Join(s.dir, "reports.json"))
		s.Require().NoError(err)
	})

	s.Run("a fresh store over the same dir sees earlier writes", func() {
		s.Require().NoError(s.store.Set(ctx, KeyUsers, []byte(`[{"id":"1"}]`)))

		reopened, err := NewFile(s.dir)
		s.Require().NoError(err)
		value, ok, err := reopened.Get(ctx, KeyUsers)
		s.Require().NoError(err)
		s.True(ok)
		s.Equal(`[{"id":"1"}]`, string(value))
	})

	s.Run("remove deletes the backing file", func() {
		s.Require().NoError(s.store.Set(ctx, KeyCurrentUser, []byte(`{}`)))
		s.Require().NoError(s.store.Remove(ctx, KeyCurrentUser))
		_, ok, err := s.store.Get(ctx, KeyCurrentUser)
		s.Require().NoError(err)
		s.False(ok)
	})

	s.Run("no stray temp files are left behind", func() {
		s.Require().NoError(s.store.Set(ctx, KeyReports, []byte(`[1]`)))
		entries, err := os.ReadDir(s.dir)
		s.Require().NoError(err)
		for _, e := range entries {
			s.NotContains(e.Name(), ".tmp")
		}
	})
}
