package models

// Classification represents the classifier's verdict on one message
type Classification struct {
	IsUnwanted bool
}
