package queue

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"share-platform/pkg/config"
	"share-platform/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	BonusQueueName  = "bonus_grant_queue"
	BonusExchange   = "bonus"
	BonusRoutingKey = "bonus_grant"

	// Failed grants wait here until their expiration, then dead-letter back
	// to BonusExchange.
	BonusRetryQueueName = "bonus_grant_retry_queue"
	// Grants that failed maxBonusAttempts times, kept for inspection.
	BonusDeadQueueName = "bonus_grant_dead_queue"

	attemptHeader    = "x-attempt"
	maxBonusAttempts = 8
	baseRetryDelay   = time.Second
	maxRetryDelay    = 5 * time.Minute
)

// BonusGrantTask asks the user service to credit (or debit) an account.
// RequestKey makes redelivery safe.
type BonusGrantTask struct {
	UserID      int64  `json:"userId"`
	Bonus       int    `json:"bonus"`
	Event       string `json:"event"`
	Description string `json:"description"`
	RequestKey  string `json:"requestKey"`
}

func (t BonusGrantTask) validate() error {
	if t.UserID == 0 {
		return fmt.Errorf("bonus grant task without userId")
	}
	if t.RequestKey == "" {
		return fmt.Errorf("bonus grant task without requestKey")
	}
	return nil
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		BonusExchange, // name
		"direct",      // type
		true,          // durable
		false,         // auto-deleted
		false,         // internal
		false,         // no-wait
		nil,           // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		BonusQueueName, // name
		true,           // durable
		false,          // delete when unused
		false,          // exclusive
		false,          // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	err = channel.QueueBind(
		BonusQueueName,  // queue name
		BonusRoutingKey, // routing key
		BonusExchange,   // exchange
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	_, err = channel.QueueDeclare(
		BonusRetryQueueName,
		true,
		false,
		false,
		false,
		amqp.Table{
			"x-dead-letter-exchange":    BonusExchange,
			"x-dead-letter-routing-key": BonusRoutingKey,
		},
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare retry queue: %w", err)
	}

	_, err = channel.QueueDeclare(BonusDeadQueueName, true, false, false, false, nil)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare dead queue: %w", err)
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// PublishBonusGrant publishes a persistent bonus grant task.
func (c *Client) PublishBonusGrant(task BonusGrantTask) error {
	if err := task.validate(); err != nil {
		return err
	}

	body, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	err = c.channel.Publish(
		BonusExchange,   // exchange
		BonusRoutingKey, // routing key
		false,           // mandatory
		false,           // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			MessageId:    task.RequestKey,
		},
	)
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish bonus grant %s: %v", task.RequestKey, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Info("[RABBITMQ] Published bonus grant %s for user %d (%+d)", task.RequestKey, task.UserID, task.Bonus)
	return nil
}

// ConsumeBonusGrants delivers tasks to handler. Malformed messages are dropped.
// Handler failures go to the retry queue with a growing delay, and to the dead
// queue once maxBonusAttempts is reached.
func (c *Client) ConsumeBonusGrants(handler func(task BonusGrantTask) error) error {
	msgs, err := c.channel.Consume(
		BonusQueueName, // queue
		"",             // consumer
		false,          // auto-ack
		false,          // exclusive
		false,          // no-local
		false,          // no-wait
		nil,            // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("[RABBITMQ] Started consuming from %s", BonusQueueName)

	go func() {
		for msg := range msgs {
			task, err := DecodeBonusGrant(msg.Body)
			if err != nil {
				c.logger.Error("[RABBITMQ] Dropping bonus grant: %v, body=%s", err, string(msg.Body))
				msg.Nack(false, false)
				continue
			}

			if err := handler(task); err != nil {
				c.logger.Error("[RABBITMQ] Bonus grant %s failed: %v", task.RequestKey, err)
				c.retry(msg)
				continue
			}

			msg.Ack(false)
		}
	}()

	return nil
}

func (c *Client) retry(msg amqp.Delivery) {
	attempt := attemptOf(msg.Headers) + 1
	delay, dead := retryPlan(attempt)

	publishing := amqp.Publishing{
		ContentType:  msg.ContentType,
		Body:         msg.Body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		MessageId:    msg.MessageId,
		Headers:      amqp.Table{attemptHeader: int32(attempt)},
	}
	queue := BonusDeadQueueName
	if !dead {
		queue = BonusRetryQueueName
		publishing.Expiration = strconv.FormatInt(delay.Milliseconds(), 10)
	}

	if err := c.channel.Publish("", queue, false, false, publishing); err != nil {
		// Broker trouble; hold the delivery for the delay before handing it back.
		c.logger.Error("[RABBITMQ] Failed to park bonus grant %s: %v", msg.MessageId, err)
		time.Sleep(delay)
		msg.Nack(false, true)
		return
	}

	if dead {
		c.logger.Error("[RABBITMQ] Bonus grant %s dead-lettered after %d attempts", msg.MessageId, attempt)
	} else {
		c.logger.Warn("[RABBITMQ] Bonus grant %s retry %d in %s", msg.MessageId, attempt, delay)
	}
	msg.Ack(false)
}

// retryPlan returns how long to wait before the given attempt, doubling from
// baseRetryDelay up to maxRetryDelay. dead is true once attempts run out.
func retryPlan(attempt int) (delay time.Duration, dead bool) {
	if attempt >= maxBonusAttempts {
		return maxRetryDelay, true
	}
	delay = baseRetryDelay
	for i := 1; i < attempt && delay < maxRetryDelay; i++ {
		delay *= 2
	}
	if delay > maxRetryDelay {
		delay = maxRetryDelay
	}
	return delay, false
}

func attemptOf(headers amqp.Table) int {
	switch v := headers[attemptHeader].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func DecodeBonusGrant(body []byte) (BonusGrantTask, error) {
	var task BonusGrantTask
	if err := json.Unmarshal(body, &task); err != nil {
		return task, fmt.Errorf("failed to unmarshal task: %w", err)
	}
	if err := task.validate(); err != nil {
		return task, err
	}
	return task, nil
}
