package queue

import (
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
)

func TestDecodeBonusGrant(t *testing.T) {
	task, err := DecodeBonusGrant([]byte(`{"userId":42,"bonus":50,"event":"CONTRIBUTE","description":"share approved","requestKey":"contribute:7"}`))

	assert.NoError(t, err)
	assert.Equal(t, int64(42), task.UserID)
	assert.Equal(t, 50, task.Bonus)
	assert.Equal(t, "CONTRIBUTE", task.Event)
	assert.Equal(t, "contribute:7", task.RequestKey)
}

func TestDecodeBonusGrant_Malformed(t *testing.T) {
	_, err := DecodeBonusGrant([]byte(`{"userId":`))
	assert.Error(t, err)
}

func TestDecodeBonusGrant_MissingFields(t *testing.T) {
	_, err := DecodeBonusGrant([]byte(`{"bonus":50,"requestKey":"contribute:7"}`))
	assert.Error(t, err)

	_, err = DecodeBonusGrant([]byte(`{"userId":42,"bonus":50}`))
	assert.Error(t, err)
}

func TestRetryPlan_BacksOffAndGivesUp(t *testing.T) {
	delay, dead := retryPlan(1)
	assert.False(t, dead)
	assert.Equal(t, time.Second, delay)

	delay, _ = retryPlan(2)
	assert.Equal(t, 2*time.Second, delay)

	delay, _ = retryPlan(5)
	assert.Equal(t, 16*time.Second, delay)

	prev := time.Duration(0)
	for attempt := 1; attempt < maxBonusAttempts; attempt++ {
		delay, dead := retryPlan(attempt)
		assert.False(t, dead)
		assert.GreaterOrEqual(t, delay, prev)
		assert.LessOrEqual(t, delay, maxRetryDelay)
		prev = delay
	}

	_, dead = retryPlan(maxBonusAttempts)
	assert.True(t, dead)
}

func TestAttemptOf(t *testing.T) {
	assert.Equal(t, 0, attemptOf(nil))
	assert.Equal(t, 0, attemptOf(amqp.Table{}))
	assert.Equal(t, 3, attemptOf(amqp.Table{attemptHeader: int32(3)}))
	assert.Equal(t, 4, attemptOf(amqp.Table{attemptHeader: int64(4)}))
	assert.Equal(t, 0, attemptOf(amqp.Table{attemptHeader: "5"}))
}
