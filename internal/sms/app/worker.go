package app

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"qsite/internal/member/domain"
	"qsite/internal/member/repository"
	"qsite/pkg/i18n"
	"qsite/pkg/logger"
	"qsite/pkg/notify"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// Outcome 單一訊息的處理結果
type Outcome int

const (
	// Ack 已送出或可以略過
	Ack Outcome = iota
	// Drop 無法解析，丟棄不重排
	Drop
	// Retry 暫時性失敗，back-off 後重排
	Retry
)

// PhoneBook 取得 member 手機號碼
type PhoneBook interface {
	FindByMember(ctx context.Context, memberQuery *domain.MemberQuery) (*domain.Member, error)
}

// Worker 消費 sms queue 並呼叫簡訊商
type Worker struct {
	members   PhoneBook
	carrier   Carrier
	lang      language.Tag
	queueName string
	// Backoff 重排前等待
	Backoff time.Duration
}

// NewWorker 建構 Worker
func NewWorker(members PhoneBook, carrier Carrier, lang language.Tag, queueName string) *Worker {
	if queueName == "" {
		queueName = notify.DefaultQueue
	}
	return &Worker{
		members:   members,
		carrier:   carrier,
		lang:      lang,
		queueName: queueName,
		Backoff:   10 * time.Second,
	}
}

// Render 依 template 與參數產生簡訊內容
func (w *Worker) Render(job notify.SMSJob) string {
	params := make([]interface{}, len(job.Params))
	for i, p := range job.Params {
		// JSON 數字解回來是 float64，整數還原成 int 給 %d 使用
		if f, ok := p.(float64); ok && f == math.Trunc(f) {
			params[i] = int(f)
			continue
		}
		params[i] = p
	}
	return i18n.T(w.lang, string(job.Template), params...)
}

// Handle 處理一則訊息 body
func (w *Worker) Handle(ctx context.Context, body []byte) Outcome {
	var job notify.SMSJob
	if err := json.Unmarshal(body, &job); err != nil {
		logger.Log.Error("decode sms job failed", zap.Error(err))
		return Drop
	}
	if job.MemberID == "" || job.Template == "" {
		logger.Log.Error("sms job missing member or template", zap.ByteString("body", body))
		return Drop
	}

	member, err := w.members.FindByMember(ctx, &domain.MemberQuery{ID: &job.MemberID})
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			logger.Log.Warn("sms member not found, skipped", zap.String("member_id", job.MemberID))
			return Ack
		}
		logger.Log.Error("lookup sms member failed", zap.String("member_id", job.MemberID), zap.Error(err))
		return Retry
	}
	if member.Phone == nil || *member.Phone == "" {
		logger.Log.Info("member has no phone, sms skipped", zap.String("member_id", job.MemberID))
		return Ack
	}

	if err := w.carrier.Send(ctx, *member.Phone, w.Render(job)); err != nil {
		logger.Log.Error("send sms failed",
			zap.String("member_id", job.MemberID),
			zap.String("template", string(job.Template)),
			zap.Error(err))
		return Retry
	}

	logger.Log.Info("sms sent", zap.String("member_id", job.MemberID), zap.String("template", string(job.Template)))
	return Ack
}

// StartConsumer 手動 ack 消費 queue，直到 ctx 結束或 channel 關閉
func (w *Worker) StartConsumer(ctx context.Context, ch *amqp.Channel) error {
	msgs, err := ch.Consume(
		w.queueName, // queue
		"",          // consumer tag，留空由系統分配
		false,       // autoAck 為 false，使用手動確認
		false,       // exclusive
		false,       // noLocal
		false,       // noWait
		nil,         // arguments
	)
	if err != nil {
		return err
	}

	logger.Log.Info("sms worker started", zap.String("queue", w.queueName))
	for {
		select {
		case d, ok := <-msgs:
			if !ok {
				logger.Log.Warn("rabbitmq delivery channel closed")
				return nil
			}
			w.settle(ctx, d, w.Handle(ctx, d.Body))
		case <-ctx.Done():
			logger.Log.Info("sms worker stopping")
			return nil
		}
	}
}

// Acknowledger amqp.Delivery 的 ack / nack
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func (w *Worker) settle(ctx context.Context, d Acknowledger, outcome Outcome) {
	var err error
	switch outcome {
	case Ack:
		err = d.Ack(false)
	case Drop:
		err = d.Nack(false, false)
	case Retry:
		select {
		case <-time.After(w.Backoff):
		case <-ctx.Done():
		}
		err = d.Nack(false, true)
	}
	if err != nil {
		logger.Log.Error("settle sms delivery failed", zap.Error(err))
	}
}
