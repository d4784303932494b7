package app

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"qsite/internal/member/domain"
	"qsite/internal/member/repository"
	"qsite/pkg/logger"
	"qsite/pkg/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type MockPhoneBook struct {
	mock.Mock
}

func (m *MockPhoneBook) FindByMember(ctx context.Context, q *domain.MemberQuery) (*domain.Member, error) {
	args := m.Called(ctx, *q.ID)
	if v := args.Get(0); v != nil {
		return v.(*domain.Member), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCarrier struct {
	mock.Mock
}

func (m *MockCarrier) Send(ctx context.Context, to, text string) error {
	return m.Called(ctx, to, text).Error(0)
}

type fakeDelivery struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (f *fakeDelivery) Ack(bool) error {
	f.acked = true
	return nil
}

func (f *fakeDelivery) Nack(_ bool, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

func jobBody(t *testing.T, job notify.SMSJob) []byte {
	data, err := json.Marshal(job)
	require.NoError(t, err)
	return data
}

func phone(s string) *string { return &s }

func TestWorker_Render(t *testing.T) {
	w := NewWorker(nil, nil, language.English, "")
	job := notify.SMSJob{Template: notify.TemplateSuspended}

	// 經過 JSON 的參數
	require.NoError(t, json.Unmarshal(jobBody(t, notify.SMSJob{
		MemberID: "m1",
		Template: notify.TemplateSuspended,
		Params:   []interface{}{7, "spam"},
	}), &job))

	assert.Equal(t, "Your Qsite account was suspended for 7 days. Reason: spam", w.Render(job))
}

func TestWorker_HandleSends(t *testing.T) {
	logger.SetNewNop()
	members := new(MockPhoneBook)
	carrier := new(MockCarrier)
	w := NewWorker(members, carrier, language.English, "sms")

	members.On("FindByMember", mock.Anything, "m1").Return(&domain.Member{ID: "m1", Phone: phone("+972500000000")}, nil).Once()
	carrier.On("Send", mock.Anything, "+972500000000", "A warning penalty was applied to your Qsite account. Reason: rude").
		Return(nil).Once()

	out := w.Handle(context.Background(), jobBody(t, notify.SMSJob{
		MemberID: "m1",
		Template: notify.TemplatePenalty,
		Params:   []interface{}{"warning", "rude"},
	}))
	assert.Equal(t, Ack, out)
	members.AssertExpectations(t)
	carrier.AssertExpectations(t)
}

func TestWorker_HandleOutcomes(t *testing.T) {
	logger.SetNewNop()
	job := notify.SMSJob{MemberID: "m1", Template: notify.TemplatePenalty, Params: []interface{}{"warning", "x"}}

	tests := []struct {
		name   string
		body   []byte
		setup  func(*MockPhoneBook, *MockCarrier)
		expect Outcome
	}{
		{
			name:   "malformed body",
			body:   []byte("{"),
			setup:  func(*MockPhoneBook, *MockCarrier) {},
			expect: Drop,
		},
		{
			name:   "missing template",
			body:   jobBody(t, notify.SMSJob{MemberID: "m1"}),
			setup:  func(*MockPhoneBook, *MockCarrier) {},
			expect: Drop,
		},
		{
			name: "member gone",
			body: jobBody(t, job),
			setup: func(m *MockPhoneBook, _ *MockCarrier) {
				m.On("FindByMember", mock.Anything, "m1").Return(nil, repository.ErrMemberNotFound)
			},
			expect: Ack,
		},
		{
			name: "no phone",
			body: jobBody(t, job),
			setup: func(m *MockPhoneBook, _ *MockCarrier) {
				m.On("FindByMember", mock.Anything, "m1").Return(&domain.Member{ID: "m1"}, nil)
			},
			expect: Ack,
		},
		{
			name: "database down",
			body: jobBody(t, job),
			setup: func(m *MockPhoneBook, _ *MockCarrier) {
				m.On("FindByMember", mock.Anything, "m1").Return(nil, errors.New("connection refused"))
			},
			expect: Retry,
		},
		{
			name: "carrier failure",
			body: jobBody(t, job),
			setup: func(m *MockPhoneBook, c *MockCarrier) {
				m.On("FindByMember", mock.Anything, "m1").Return(&domain.Member{ID: "m1", Phone: phone("+1")}, nil)
				c.On("Send", mock.Anything, "+1", mock.Anything).Return(errors.New("carrier status 503"))
			},
			expect: Retry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			members := new(MockPhoneBook)
			carrier := new(MockCarrier)
			tt.setup(members, carrier)

			w := NewWorker(members, carrier, language.English, "")
			assert.Equal(t, tt.expect, w.Handle(context.Background(), tt.body))
			carrier.AssertExpectations(t)
		})
	}
}

func TestWorker_Settle(t *testing.T) {
	logger.SetNewNop()
	w := NewWorker(nil, nil, language.English, "")
	w.Backoff = time.Millisecond

	d := &fakeDelivery{}
	w.settle(context.Background(), d, Ack)
	assert.True(t, d.acked)
	assert.False(t, d.nacked)

	d = &fakeDelivery{}
	w.settle(context.Background(), d, Drop)
	assert.True(t, d.nacked)
	assert.False(t, d.requeue)

	d = &fakeDelivery{}
	w.settle(context.Background(), d, Retry)
	assert.True(t, d.nacked)
	assert.True(t, d.requeue)
}
