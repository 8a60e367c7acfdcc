package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"campus-im/internal/model"
	dbpkg "campus-im/pkg/db"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupDB opens a fresh in-memory database per test. The shared-cache DSN
// keyed by test name keeps the schema visible across the pool's
// connections while isolating tests from each other. SQLite leaves
// foreign keys off unless asked, so the DSN turns them on to match the
// production schema.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, dbpkg.AutoMigrate(db,
		&model.User{},
		&model.Friendship{},
		&model.Group{},
		&model.GroupMember{},
		&model.Message{},
		&model.Reaction{},
		&model.Session{},
		&model.Notification{},
		&model.ErrorLog{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	u, err := NewUserService(db).CreateUser(
		name, name+"@example.com", "secret-"+name, "pk-"+name, []byte("enc-"+name))
	require.NoError(t, err)
	return u
}

// createGroupWith builds a group with admin plus the given extra members.
func createGroupWith(t *testing.T, db *gorm.DB, admin *model.User, members ...*model.User) *model.Group {
	t.Helper()
	svc := NewGroupService(db)
	g, err := svc.CreateGroup("group-"+admin.Username, admin.ID)
	require.NoError(t, err)
	for _, m := range members {
		_, err := svc.AddMember(g.ID, m.ID)
		require.NoError(t, err)
	}
	return g
}

func sendDirect(t *testing.T, db *gorm.DB, from, to *model.User, content string) *model.Message {
	t.Helper()
	m, err := NewMessageService(db, nil).SendMessage(from.ID, &to.ID, nil, []byte(content))
	require.NoError(t, err)
	return m
}

func createSession(t *testing.T, db *gorm.DB, u *model.User, ttl time.Duration) *model.Session {
	t.Helper()
	sess, err := NewSessionService(db, nil).CreateSession(
		u.ID, "token-"+u.Username+"-"+ttl.String(), time.Now().Add(ttl))
	require.NoError(t, err)
	return sess
}

func countRows(t *testing.T, db *gorm.DB, m interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := db.Model(m)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}
