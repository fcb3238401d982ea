package usecase

import "time"

const (
	// DefaultStoreTimeout bounds how long a single engine operation may
	// spend against the data store, compensation included.
	DefaultStoreTimeout = 15 * time.Second

	// Reference types stamped on journal entries created by this engine.
	ReferenceTypeDistribution        = "distribution"
	ReferenceTypeDistributionPayment = "distribution_payment"
)
