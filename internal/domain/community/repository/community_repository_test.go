package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newMockRepository 用 sqlmock 搭建仓库，gorm 与 sqlx 共用同一个连接
func newMockRepository(t *testing.T) (CommunityRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sdb := sqlx.NewDb(db, "sqlmock")
	return NewCommunityRepository(gormDB, sdb), mock
}

func TestGetList(t *testing.T) {
	repo, mock := newMockRepository(t)

	rows := sqlmock.NewRows([]string{"id", "name", "description"}).
		AddRow("c-1", "Cat Rescue", "felines first").
		AddRow("c-2", "Dog Shelter", "good boys")
	mock.ExpectQuery(`SELECT \* FROM "communities" ORDER BY name asc`).WillReturnRows(rows)

	communities, err := repo.GetList(context.Background())

	assert.NoError(t, err)
	assert.Len(t, communities, 2)
	assert.Equal(t, "Cat Rescue", communities[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStats(t *testing.T) {
	repo, mock := newMockRepository(t)

	rows := sqlmock.NewRows([]string{"community_id", "member_count", "active_count"}).
		AddRow("c-1", int64(10), int64(3)).
		AddRow("c-2", int64(4), int64(4))
	mock.ExpectQuery(`SELECT community_id`).WillReturnRows(rows)

	stats, err := repo.GetStats(context.Background())

	assert.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, int64(10), stats[0].MemberCount)
	assert.Equal(t, int64(3), stats[0].ActiveCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoin(t *testing.T) {
	repo, mock := newMockRepository(t)

	// 加入必须走 upsert，重复加入才能落在 DO UPDATE 分支上
	mock.ExpectQuery(`INSERT INTO "community_members" .* ON CONFLICT \("user_id","community_id"\) DO UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("member-1"))

	err := repo.Join(context.Background(), "user-1", "c-1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeave(t *testing.T) {
	t.Run("existing membership removed", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectExec(`DELETE FROM "community_members"`).
			WithArgs("user-1", "c-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Leave(context.Background(), "user-1", "c-1")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing membership still succeeds", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectExec(`DELETE FROM "community_members"`).
			WithArgs("user-1", "c-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Leave(context.Background(), "user-1", "c-1")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTouchActivity(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(`UPDATE "community_members" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.TouchActivity(context.Background(), "user-1", "c-1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
