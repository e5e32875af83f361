package donations

import "time"

// Donation es una campaña de recaudación.
// RaisedAmount solo crece vía Contribute y puede superar GoalAmount.
type Donation struct {
	ID           int
	Title        string
	Description  string
	GoalAmount   int
	RaisedAmount int
	ImageURL     *string
	CreatedAt    time.Time
}

// Insert no lleva RaisedAmount: el storage siempre arranca en 0.
type Insert struct {
	Title       string
	Description string
	GoalAmount  int
	ImageURL    *string
}

// Patch no incluye RaisedAmount: para eso está Contribute.
type Patch struct {
	Title       *string
	Description *string
	GoalAmount  *int
	ImageURL    *string
}

func (p Patch) Apply(d *Donation) {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.GoalAmount != nil {
		d.GoalAmount = *p.GoalAmount
	}
	if p.ImageURL != nil {
		v := *p.ImageURL
		d.ImageURL = &v
	}
}
