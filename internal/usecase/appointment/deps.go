package appointment

import (
	"go.uber.org/zap"

	"github.com/BruksfildServices01/autorepair-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/autorepair-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/httperr"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/timezone"
)

// Deps bundles what the appointment use cases share.
type Deps struct {
	Repo  domain.Repository
	Cache domain.SlotCache
	Audit *audit.Dispatcher
	Clock timezone.Clock
	Log   *zap.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Cache == nil {
		d.Cache = cache.NoopSlotCache{}
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	return d
}

// logUnexpected records failures that are not business outcomes.
func (d Deps) logUnexpected(msg string, err error, fields ...zap.Field) {
	if httperr.KindOf(err) != httperr.KindInternal {
		return
	}
	d.Log.Error(msg, append(fields, zap.Error(err))...)
}
