package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/loopin/internal/dbx"
	"github.com/dmitrijs2005/loopin/internal/server/repositories/attachments"
	"github.com/dmitrijs2005/loopin/internal/server/repositories/notifications"
	"github.com/dmitrijs2005/loopin/internal/server/repositories/posts"
	"github.com/dmitrijs2005/loopin/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/loopin/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to either the pool or a
// transaction, so services can choose per call.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Posts(db dbx.DBTX) posts.Repository
	Notifications(db dbx.DBTX) notifications.Repository
	Attachments(db dbx.DBTX) attachments.Repository
}
