package board

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/trezcool/clubboard/core"
)

// NewServiceMock returns a Service with a fixed clock and sequential IDs ("id-1", "id-2", ...).
func NewServiceMock(store core.BlobStore, logger core.Logger, conf *core.Config, now time.Time) *Service {
	svc := NewService(store, logger, conf)
	var seq int64
	svc.now = func() time.Time { return now }
	svc.newID = func() string { return "id-" + strconv.FormatInt(atomic.AddInt64(&seq, 1), 10) }
	svc.doc = svc.defaultDocument()
	return svc
}
