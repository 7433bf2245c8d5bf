//go:build integration

package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"campusreport/internal/storage"
	"campusreport/pkg/testutil/containers"
)

type PostgresIntegrationSuite struct {
	suite.Suite

	pg    *containers.PostgresContainer
	store *storage.Postgres
}

func TestPostgresIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = storage.NewPostgres(s.pg.DB)
	s.Require().NoError(s.store.EnsureSchema(context.Background()))
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, err := s.pg.DB.ExecContext(context.Background(), "TRUNCATE blobs")
	s.Require().NoError(err)
}

func (s *PostgresIntegrationSuite) TestEnsureSchemaIsIdempotent() {
	s.Require().NoError(s.store.EnsureSchema(context.Background()))
}

func (s *PostgresIntegrationSuite) TestGetAbsentKey() {
	_, ok, err := s.store.Get(context.Background(), "users")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *PostgresIntegrationSuite) TestSetGetRemove() {
	ctx := context.Background()

	s.Require().NoError(s.store.Set(ctx, "reports", []byte(`[]`)))

	got, ok, err := s.store.Get(ctx, "reports")
	s.Require().NoError(err)
	s.True(ok)
	s.Equal([]byte(`[]`), got)

	s.Require().NoError(s.store.Remove(ctx, "reports"))

	_, ok, err = s.store.Get(ctx, "reports")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *PostgresIntegrationSuite) TestUpsertReplacesValue() {
	ctx := context.Background()

	s.Require().NoError(s.store.Set(ctx, "user", []byte(`{"id":"1"}`)))
	s.Require().NoError(s.store.Set(ctx, "user", []byte(`{"id":"2"}`)))

	got, ok, err := s.store.Get(ctx, "user")
	s.Require().NoError(err)
	s.True(ok)
	s.Equal([]byte(`{"id":"2"}`), got)
}

func (s *PostgresIntegrationSuite) TestRemoveAbsentKeyIsIdempotent() {
	s.Require().NoError(s.store.Remove(context.Background(), "user"))
}
