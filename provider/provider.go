package provider

import (
	"booklet-show/biz/application/service"
	"booklet-show/biz/infrastructure/cache"
	"booklet-show/biz/infrastructure/config"
	"booklet-show/biz/infrastructure/lock"
	"booklet-show/biz/infrastructure/repository/assignment"
	"booklet-show/biz/infrastructure/repository/booklet"
	"booklet-show/biz/infrastructure/repository/remote"
	"booklet-show/biz/infrastructure/repository/submission"
	"booklet-show/biz/infrastructure/repository/user"

	"github.com/google/wire"
)

var provider *Provider

func Init() {
	var err error
	provider, err = NewProvider()
	if err != nil {
		panic(err)
	}
}

// Provider 提供controller依赖的对象
type Provider struct {
	Config            *config.Config
	UserService       service.UserService
	BookletService    service.BookletService
	AssignmentService service.AssignmentService
	SubmissionService service.SubmissionService
	TransferService   service.TransferService
	AssetService      service.AssetService
	SyncService       *service.SyncService
}

func Get() *Provider {
	return provider
}

var ApplicationSet = wire.NewSet(
	service.UserServiceSet,
	service.BookletServiceSet,
	service.AssignmentServiceSet,
	service.SubmissionServiceSet,
	service.TransferServiceSet,
	service.AssetServiceSet,
	service.SyncServiceSet,
)

var InfrastructureSet = wire.NewSet(
	config.NewConfig,
	booklet.NewMongoMapper,
	wire.Bind(new(booklet.Mapper), new(*booklet.MongoMapper)),
	user.NewMongoMapper,
	wire.Bind(new(user.Mapper), new(*user.MongoMapper)),
	assignment.NewMongoMapper,
	wire.Bind(new(assignment.Mapper), new(*assignment.MongoMapper)),
	submission.NewMongoMapper,
	wire.Bind(new(submission.Mapper), new(*submission.MongoMapper)),
	remote.NewMySQLMapper,
	wire.Bind(new(remote.Mapper), new(*remote.MySQLMapper)),
	lock.NewSyncLock,
	cache.NewExportCacheMapper,
	wire.Bind(new(cache.IExportCacheMapper), new(*cache.ExportCacheMapper)),
)

var AllProvider = wire.NewSet(
	ApplicationSet,
	InfrastructureSet,
)
