package discovery_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/segtimer/segtimer-go/pkg/discovery"
	"github.com/segtimer/segtimer-go/pkg/discovery/mocks"
)

func testInfo() discovery.ServiceInfo {
	return discovery.ServiceInfo{
		Instance:     "segtimer-lobby",
		Port:         8080,
		Version:      "1.2.0",
		StatusPath:   "/timerStatus",
		IntervalPath: "/timerInterval",
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTXTRoundTrip(t *testing.T) {
	info := testInfo()
	info.State = "RUNNING"

	strs := discovery.TXTRecordsToStrings(discovery.EncodeServiceTXT(&info))
	assert.Equal(t, []string{
		"interval_path=/timerInterval",
		"state=RUNNING",
		"status_path=/timerStatus",
		"version=1.2.0",
	}, strs)

	got, err := discovery.DecodeServiceTXT(discovery.StringsToTXTRecords(strs))
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", got.Version)
	assert.Equal(t, "/timerStatus", got.StatusPath)
	assert.Equal(t, "/timerInterval", got.IntervalPath)
	assert.Equal(t, "RUNNING", got.State)
}

func TestEncodeOmitsEmptyState(t *testing.T) {
	info := testInfo()
	txt := discovery.EncodeServiceTXT(&info)
	_, ok := txt[discovery.TXTKeyState]
	assert.False(t, ok)
}

func TestDecodeMissingField(t *testing.T) {
	_, err := discovery.DecodeServiceTXT(discovery.TXTRecordMap{
		discovery.TXTKeyVersion:    "1.0.0",
		discovery.TXTKeyStatusPath: "/timerStatus",
	})
	assert.ErrorIs(t, err, discovery.ErrMissingRequired)
	assert.Contains(t, err.Error(), discovery.TXTKeyIntervalPath)
}

func TestStringsToTXTRecordsFlag(t *testing.T) {
	txt := discovery.StringsToTXTRecords([]string{"a=b=c", "flag", ""})
	assert.Equal(t, discovery.TXTRecordMap{"a": "b=c", "flag": ""}, txt)
}

func TestValidateInstanceName(t *testing.T) {
	assert.NoError(t, discovery.ValidateInstanceName("segtimer"))
	assert.ErrorIs(t, discovery.ValidateInstanceName(""), discovery.ErrInvalidInstanceName)
	assert.ErrorIs(t, discovery.ValidateInstanceName("seg.timer"), discovery.ErrInvalidInstanceName)

	long := make([]byte, discovery.MaxInstanceNameLength+1)
	for i := range long {
		long[i] = 'a'
	}
	assert.ErrorIs(t, discovery.ValidateInstanceName(string(long)), discovery.ErrInvalidInstanceName)
}

func TestServiceInfoValidate(t *testing.T) {
	info := testInfo()
	require.NoError(t, info.Validate())

	info.Version = ""
	assert.ErrorIs(t, info.Validate(), discovery.ErrMissingRequired)

	info = testInfo()
	info.Port = 0
	assert.ErrorIs(t, info.Validate(), discovery.ErrInvalidPort)
}

func TestAnnouncerLifecycle(t *testing.T) {
	advertiser := mocks.NewMockAdvertiser(t)
	advertiser.EXPECT().Advertise(mock.Anything, mock.MatchedBy(func(info *discovery.ServiceInfo) bool {
		return info.Instance == "segtimer-lobby" && info.State == "STOPPED"
	})).Return(nil).Once()
	advertiser.EXPECT().Update(mock.MatchedBy(func(info *discovery.ServiceInfo) bool {
		return info.State == "RUNNING"
	})).Return(nil).Once()
	advertiser.EXPECT().Stop().Return().Once()

	a := discovery.NewAnnouncer(advertiser, testInfo(), quietLogger())
	a.SetState("STOPPED")

	require.NoError(t, a.Start(context.Background()))
	a.SetState("RUNNING")
	assert.Equal(t, "RUNNING", a.Info().State)

	a.Stop()
	a.Stop()
}

func TestAnnouncerUpdateBeforeStart(t *testing.T) {
	advertiser := mocks.NewMockAdvertiser(t)

	a := discovery.NewAnnouncer(advertiser, testInfo(), quietLogger())
	a.SetState("RUNNING")
	a.Stop()

	assert.Equal(t, "RUNNING", a.Info().State)
}

func TestAnnouncerStartFails(t *testing.T) {
	advertiser := mocks.NewMockAdvertiser(t)
	advertiser.EXPECT().Advertise(mock.Anything, mock.Anything).Return(errors.New("no multicast")).Once()

	a := discovery.NewAnnouncer(advertiser, testInfo(), quietLogger())
	require.Error(t, a.Start(context.Background()))

	// Not active, so neither Update nor Stop reach the advertiser.
	a.SetState("RUNNING")
	a.Stop()
}

func TestAnnouncerRejectsInvalidInfo(t *testing.T) {
	advertiser := mocks.NewMockAdvertiser(t)
	info := testInfo()
	info.Instance = ""

	a := discovery.NewAnnouncer(advertiser, info, quietLogger())
	assert.ErrorIs(t, a.Start(context.Background()), discovery.ErrInvalidInstanceName)
}

func TestAnnouncerUpdateErrorIsLogged(t *testing.T) {
	advertiser := mocks.NewMockAdvertiser(t)
	advertiser.EXPECT().Advertise(mock.Anything, mock.Anything).Return(nil).Once()
	advertiser.EXPECT().Update(mock.Anything).Return(discovery.ErrNotAdvertising).Once()

	a := discovery.NewAnnouncer(advertiser, testInfo(), quietLogger())
	require.NoError(t, a.Start(context.Background()))
	a.SetState("EXPIRING")
}

func TestMDNSAdvertiserUpdateWithoutRegister(t *testing.T) {
	adv := discovery.NewMDNSAdvertiser(discovery.DefaultAdvertiserConfig())
	info := testInfo()
	assert.ErrorIs(t, adv.Update(&info), discovery.ErrNotAdvertising)
	adv.Stop()
}

func TestMDNSAdvertiserRejectsInvalidInfo(t *testing.T) {
	adv := discovery.NewMDNSAdvertiser(discovery.DefaultAdvertiserConfig())
	info := testInfo()
	info.Instance = "bad.name"
	assert.ErrorIs(t, adv.Advertise(context.Background(), &info), discovery.ErrInvalidInstanceName)
}

func TestMDNSAdvertiserUnknownInterface(t *testing.T) {
	cfg := discovery.DefaultAdvertiserConfig()
	cfg.Interface = "does-not-exist0"
	adv := discovery.NewMDNSAdvertiser(cfg)

	info := testInfo()
	err := adv.Advertise(context.Background(), &info)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist0")
}
