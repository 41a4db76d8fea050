package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tsouxd/reservation-lalilalou/config"
	"github.com/Tsouxd/reservation-lalilalou/internal/ledger"
)

func TestNewScheduler(t *testing.T) {
	l := ledger.NewMemoryLedger(headerRow())
	rec := NewReconciler(l, &mockSender{}, testBooking())
	arch := NewArchiver(l, 30)

	cfg := &config.JobsConfig{
		ReconcileInterval: 15 * time.Minute,
		ArchiveCron:       "0 3 * * *",
	}

	s, err := NewScheduler(cfg, rec, arch)
	require.NoError(t, err)
	assert.Len(t, s.cron.Entries(), 2)
}

func TestNewSchedulerBadCronExpr(t *testing.T) {
	l := ledger.NewMemoryLedger(headerRow())
	rec := NewReconciler(l, &mockSender{}, testBooking())
	arch := NewArchiver(l, 30)

	cfg := &config.JobsConfig{
		ReconcileInterval: 15 * time.Minute,
		ArchiveCron:       "not a cron expression",
	}

	_, err := NewScheduler(cfg, rec, arch)
	assert.Error(t, err)
}
