package application

import "time"

// ShortfallKind says which requirement a Discord account failed.
type ShortfallKind int

const (
	ShortfallAccountAge ShortfallKind = iota
	ShortfallServerTenure
)

// Shortfall carries the measured and required values so the delivery
// layer can render an exact message ("needs 7 days, has 2").
type Shortfall struct {
	Kind     ShortfallKind
	Required int
	Measured int
}

// VerificationService is the stateless eligibility check run before a
// code may be redeemed: the Discord account must be old enough and must
// have been in the guild long enough.
type VerificationService struct {
	enabled              bool
	minAccountAgeDays    int
	minServerJoinMinutes int

	now func() time.Time
}

func NewVerificationService(enabled bool, minAccountAgeDays, minServerJoinMinutes int) *VerificationService {
	return &VerificationService{
		enabled:              enabled,
		minAccountAgeDays:    minAccountAgeDays,
		minServerJoinMinutes: minServerJoinMinutes,
		now:                  time.Now,
	}
}

// Check returns nil when the account is eligible. joinedAt may be nil
// when the member's guild join time is unknown; the tenure check is
// skipped in that case.
func (v *VerificationService) Check(accountCreatedAt time.Time, joinedAt *time.Time) *Shortfall {
	if !v.enabled {
		return nil
	}

	ageDays := int(v.now().Sub(accountCreatedAt).Hours() / 24)
	if ageDays < v.minAccountAgeDays {
		return &Shortfall{
			Kind:     ShortfallAccountAge,
			Required: v.minAccountAgeDays,
			Measured: ageDays,
		}
	}

	if joinedAt != nil {
		tenureMinutes := int(v.now().Sub(*joinedAt).Minutes())
		if tenureMinutes < v.minServerJoinMinutes {
			return &Shortfall{
				Kind:     ShortfallServerTenure,
				Required: v.minServerJoinMinutes,
				Measured: tenureMinutes,
			}
		}
	}

	return nil
}

func (v *VerificationService) AccountAgeDays(accountCreatedAt time.Time) int {
	return int(v.now().Sub(accountCreatedAt).Hours() / 24)
}

func (v *VerificationService) ServerJoinMinutes(joinedAt time.Time) int {
	return int(v.now().Sub(joinedAt).Minutes())
}
