package genai

import (
	"context"
	"errors"
	"testing"
	"time"

	domerrors "github.com/studygate/partner-bot-go/internal/errors"
	"github.com/studygate/partner-bot-go/internal/slots"
)

type fakeExtractor struct {
	provider Provider
	state    *slots.QueryState
	errs     []error
	calls    int
}

func (f *fakeExtractor) Extract(_ context.Context, _ string, _ []slots.ConversationTurn, _ *slots.QueryState) (*slots.QueryState, error) {
	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return f.state, nil
}

func (f *fakeExtractor) IsEnabled() bool    { return true }
func (f *fakeExtractor) Close() error       { return nil }
func (f *fakeExtractor) Provider() Provider { return f.provider }

func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts:  2,
		InitialDelay: time.Millisecond,
		MaxDelay:     2 * time.Millisecond,
	}
}

func TestFallbackExtractorPrimarySuccess(t *testing.T) {
	want := slots.New()
	want.Intent = slots.IntentFees
	primary := &fakeExtractor{provider: ProviderGroq, state: want}
	secondary := &fakeExtractor{provider: ProviderGemini, state: slots.New()}

	f := NewFallbackSlotExtractor(primary, secondary, fastRetry(), nil)

	got, err := f.Extract(context.Background(), "fees", nil, nil)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got.Intent != slots.IntentFees {
		t.Errorf("Intent = %v", got.Intent)
	}
	if primary.calls != 1 || secondary.calls != 0 {
		t.Errorf("calls: primary=%d secondary=%d", primary.calls, secondary.calls)
	}
}

func TestFallbackExtractorRetriesTransient(t *testing.T) {
	want := slots.New()
	primary := &fakeExtractor{
		provider: ProviderGroq,
		state:    want,
		errs:     []error{errors.New("503 service unavailable")},
	}

	f := NewFallbackSlotExtractor(primary, nil, fastRetry(), nil)

	if _, err := f.Extract(context.Background(), "q", nil, nil); err != nil {
		t.Fatalf("Extract after retry: %v", err)
	}
	if primary.calls != 2 {
		t.Errorf("primary calls = %d, want 2", primary.calls)
	}
}

func TestFallbackExtractorFailsOverOnQuota(t *testing.T) {
	want := slots.New()
	want.DegreeLevel = slots.DegreeMaster
	primary := &fakeExtractor{
		provider: ProviderGroq,
		errs:     []error{errors.New("quota exceeded")},
	}
	secondary := &fakeExtractor{provider: ProviderGemini, state: want}

	f := NewFallbackSlotExtractor(primary, secondary, fastRetry(), nil)

	got, err := f.Extract(context.Background(), "q", nil, nil)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got.DegreeLevel != slots.DegreeMaster {
		t.Errorf("DegreeLevel = %q", got.DegreeLevel)
	}
	if primary.calls != 1 {
		t.Errorf("primary calls = %d, want 1 (quota skips retry)", primary.calls)
	}
	if secondary.calls != 1 {
		t.Errorf("secondary calls = %d, want 1", secondary.calls)
	}
}

func TestFallbackExtractorPermanentErrorNoFailover(t *testing.T) {
	primary := &fakeExtractor{
		provider: ProviderGroq,
		errs:     []error{errors.New("401 unauthorized")},
	}
	secondary := &fakeExtractor{provider: ProviderGemini, state: slots.New()}

	f := NewFallbackSlotExtractor(primary, secondary, fastRetry(), nil)

	if _, err := f.Extract(context.Background(), "q", nil, nil); err == nil {
		t.Fatal("expected error for permanent failure")
	}
	if secondary.calls != 0 {
		t.Errorf("secondary calls = %d, want 0", secondary.calls)
	}
}

func TestFallbackExtractorAllFail(t *testing.T) {
	primary := &fakeExtractor{
		provider: ProviderGroq,
		errs:     []error{errors.New("quota exceeded")},
	}
	secondary := &fakeExtractor{
		provider: ProviderCerebras,
		errs:     []error{errors.New("quota exceeded")},
	}

	f := NewFallbackSlotExtractor(primary, secondary, fastRetry(), nil)

	_, err := f.Extract(context.Background(), "q", nil, nil)
	if err == nil {
		t.Fatal("expected error when every provider fails")
	}
	if !errors.Is(err, domerrors.ErrFallbackUnavailable) {
		t.Errorf("error = %v, want ErrFallbackUnavailable", err)
	}
}

func TestFallbackExtractorContextCanceled(t *testing.T) {
	primary := &fakeExtractor{provider: ProviderGroq, state: slots.New()}
	f := NewFallbackSlotExtractor(primary, nil, fastRetry(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := f.Extract(ctx, "q", nil, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Extract on canceled context: got %v", err)
	}
	if primary.calls != 0 {
		t.Errorf("primary calls = %d, want 0", primary.calls)
	}
}

func TestFallbackExtractorNilReceiver(t *testing.T) {
	var f *FallbackSlotExtractor
	if f.IsEnabled() {
		t.Error("nil extractor should not be enabled")
	}
	if err := f.Close(); err != nil {
		t.Errorf("Close on nil: %v", err)
	}
}
