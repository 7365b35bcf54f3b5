package subscription

// reports whether the account may generate another image: the subscription
// must be active and the daily counter under the plan limit (or the plan
// unlimited). Read-then-act: two simultaneous requests near the boundary may
// both pass; the backend store is the system of record.
func CanGenerate(s *Snapshot) bool {
	if s.Status != StatusActive {
		return false
	}

	if s.ImagesLimit == Unlimited {
		return true
	}

	return s.ImagesUsedToday < s.ImagesLimit
}

// generations left today; -1 for unlimited plans
func Remaining(s *Snapshot) int {
	if s.ImagesLimit == Unlimited {
		return Unlimited
	}

	remaining := s.ImagesLimit - s.ImagesUsedToday
	if remaining < 0 {
		return 0
	}

	return remaining
}

// daily allowance for a plan name
func DailyLimit(plan string) int {
	switch plan {
	case PlanPro:
		return 100
	case PlanEnterprise:
		return Unlimited
	default:
		return 5
	}
}
