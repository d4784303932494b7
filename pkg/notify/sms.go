// Package notify publishes transactional SMS jobs to the queue consumed by
// sms_worker.
package notify

import (
	"encoding/json"
	"fmt"
	"time"

	"qsite/pkg/database"

	"github.com/streadway/amqp"
)

// Template sms template key in the i18n catalog
type Template string

const (
	// TemplateSuspended params: days(int), reason(string)
	TemplateSuspended Template = "sms.suspended"
	// TemplatePenalty params: penaltyType(string), reason(string)
	TemplatePenalty Template = "sms.penalty"
)

// DefaultQueue queue name
const DefaultQueue = "sms"

// SMSJob 一則待發送的簡訊
type SMSJob struct {
	MemberID  string        `json:"member_id"`
	Template  Template      `json:"template"`
	Params    []interface{} `json:"params,omitempty"`
	CreatedAt int64         `json:"created_at"`
}

// SMSPublisher 發送簡訊工作
type SMSPublisher interface {
	PublishSMS(job SMSJob) error
}

// Publisher publish SMSJob to rabbitmq
type Publisher struct {
	rabbit database.RabbitRepo
	queue  string
}

// NewPublisher create Publisher
func NewPublisher(rabbit database.RabbitRepo, queue string) *Publisher {
	if queue == "" {
		queue = DefaultQueue
	}
	return &Publisher{rabbit: rabbit, queue: queue}
}

// PublishSMS serialize job and publish to the default exchange
func (p *Publisher) PublishSMS(job SMSJob) error {
	if job.CreatedAt == 0 {
		job.CreatedAt = time.Now().Unix()
	}
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal sms job: %w", err)
	}
	return p.rabbit.Publish(
		"",      // 預設 exchange
		p.queue, // routing key = queue 名稱
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         data,
		},
	)
}
