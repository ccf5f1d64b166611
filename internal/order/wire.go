//go:build wireinject

package order

import (
	"sync"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/emall/internal/cart"
	"github.com/ecodeclub/emall/internal/order/internal/event"
	"github.com/ecodeclub/emall/internal/order/internal/job"
	"github.com/ecodeclub/emall/internal/order/internal/repository"
	"github.com/ecodeclub/emall/internal/order/internal/repository/dao"
	"github.com/ecodeclub/emall/internal/order/internal/service"
	"github.com/ecodeclub/emall/internal/order/internal/web"
	"github.com/ecodeclub/emall/internal/payment"
	"github.com/ecodeclub/emall/internal/pkg/database"
	"github.com/ecodeclub/emall/internal/pkg/sequencenumber"
	"github.com/ecodeclub/emall/internal/product"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"github.com/gotomicro/ego/core/econf"
)

func InitModule(db *egorm.Component,
	q mq.MQ,
	ec ecache.Cache,
	pm *product.Module,
	cm *cart.Module,
	paym *payment.Module) (*Module, error) {
	wire.Build(
		InitTablesOnce,
		repository.NewRepository,
		database.NewTransactor,
		initSNGenerator,
		event.NewOrderEventProducer,
		wire.FieldsOf(new(*product.Module), "Svc"),
		wire.FieldsOf(new(*cart.Module), "Svc"),
		wire.FieldsOf(new(*payment.Module), "Svc"),
		service.NewService,
		web.NewHandler,
		web.NewWebhookHandler,
		initCloseExpiredOrdersJob,
		initReconcilePaymentsJob,
		wire.Struct(new(Module), "*"),
	)
	return new(Module), nil
}

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.OrderDAO {
	once.Do(func() {
		if err := dao.InitTables(db); err != nil {
			panic(err)
		}
		if err := sequencenumber.InitTables(db); err != nil {
			panic(err)
		}
	})
	return dao.NewOrderGORMDAO(db)
}

func initSNGenerator(db *egorm.Component) service.SNGenerator {
	return sequencenumber.NewOrderGenerator(db)
}

type expireConfig struct {
	// Minutes 在线支付订单未支付多久后关闭
	Minutes int64 `yaml:"minutes"`
	// ReconcileSeconds 创建多久之后开始主动查询网关
	ReconcileSeconds int64 `yaml:"reconcileSeconds"`
	Limit            int   `yaml:"limit"`
}

func loadExpireConfig() expireConfig {
	cfg := expireConfig{
		Minutes:          30,
		ReconcileSeconds: 120,
		Limit:            100,
	}
	_ = econf.UnmarshalKey("order.expire", &cfg)
	// 配置成 0 或负数时退回默认值，limit 为 0 会让扫描停不下来
	if cfg.Minutes <= 0 {
		cfg.Minutes = 30
	}
	if cfg.ReconcileSeconds <= 0 {
		cfg.ReconcileSeconds = 120
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 100
	}
	return cfg
}

func initCloseExpiredOrdersJob(svc service.Service) *job.CloseExpiredOrdersJob {
	cfg := loadExpireConfig()
	return job.NewCloseExpiredOrdersJob(svc, cfg.Minutes, cfg.Limit)
}

func initReconcilePaymentsJob(svc service.Service) *job.ReconcilePaymentsJob {
	cfg := loadExpireConfig()
	return job.NewReconcilePaymentsJob(svc, cfg.ReconcileSeconds, cfg.Limit)
}
