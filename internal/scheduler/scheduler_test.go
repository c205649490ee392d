package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendSummary(ctx context.Context, chatID int64) error {
	return m.Called(ctx, chatID).Error(0)
}

func TestSendSummariesContinuesAfterFailure(t *testing.T) {
	notifier := &mockNotifier{}
	notifier.On("SendSummary", mock.Anything, int64(1)).Return(errors.New("blocked by user")).Once()
	notifier.On("SendSummary", mock.Anything, int64(2)).Return(nil).Once()

	s := NewScheduler("0 21 * * *", []int64{1, 2}, notifier, nil)
	s.sendSummaries()

	notifier.AssertExpectations(t)
}

func TestStartRejectsInvalidSchedule(t *testing.T) {
	s := NewScheduler("every day", []int64{1}, &mockNotifier{}, nil)

	assert.Error(t, s.Start())
}

func TestStartStop(t *testing.T) {
	notifier := &mockNotifier{}
	s := NewScheduler("0 21 * * *", []int64{1}, notifier, nil)

	assert.NoError(t, s.Start())
	s.Stop()
	notifier.AssertNotCalled(t, "SendSummary", mock.Anything, mock.Anything)
}
