package cmd

import "time"

// Config carries every knob the service reads from the environment.
type Config struct {
	HTTPPort string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	OrderSourceChannel string
	FulfillmentChannel string
	MailChannel        string
	JobChannel         string

	StoreID  string
	VendorID string

	CronSpec      string
	MergeStrategy string

	SettleDelay     time.Duration
	SendTimeout     time.Duration
	NotifyQueueSize int
	NotifyTimeout   time.Duration
}
