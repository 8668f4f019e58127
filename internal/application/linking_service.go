package application

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"mclink/internal/models"
	"mclink/internal/repository"
)

var (
	// ErrCodeSpaceExhausted means collision probing hit its attempt
	// budget; the numeric code space is effectively full.
	ErrCodeSpaceExhausted = errors.New("verification code space exhausted")
	// ErrCodeNotStored means the freshly generated code could not be
	// persisted; the caller may retry.
	ErrCodeNotStored = errors.New("failed to store verification code")
)

// RedeemStatus tags the outcome of a redemption attempt. Every
// rejection maps to its own user-facing message in the delivery layer.
type RedeemStatus int

const (
	RedeemSuccess RedeemStatus = iota
	RejectMalformedCode
	RejectInvalidOrExpired
	RejectAlreadyLinked
	RejectAccountLimit
	RejectPersistenceFailure
)

type RedeemResult struct {
	Status RedeemStatus
	Link   *models.LinkRecord
	// LinkedCount is the submitter's link count after a success, or
	// their current count on a limit rejection.
	LinkedCount int
}

// LinkingService owns the verification-code lifecycle: issuing codes to
// unlinked players, redeeming them for link records, and the read/unlink
// operations around both stores. It is safe for concurrent use from the
// HTTP join path and the Discord interaction path at once.
type LinkingService struct {
	links       repository.Link
	codes       repository.Code
	maxAccounts int
	codeLength  int
	log         Logger

	// Redemptions for the same Minecraft account are serialized here,
	// so two submissions of one leaked code cannot both pass the
	// not-yet-linked check.
	locks sync.Map // minecraft uuid -> *sync.Mutex

	// Overridable in tests.
	now     func() time.Time
	genCode func(length int) (string, error)
}

func NewLinkingService(links repository.Link, codes repository.Code, maxAccounts, codeLength int, log Logger) *LinkingService {
	if codeLength <= 0 {
		codeLength = defaultCodeLength
	}
	return &LinkingService{
		links:       links,
		codes:       codes,
		maxAccounts: maxAccounts,
		codeLength:  codeLength,
		log:         log,
		now:         time.Now,
		genCode:     generateNumericCode,
	}
}

func (s *LinkingService) IsLinked(minecraftUUID string) bool {
	return s.links.IsLinked(minecraftUUID)
}

func (s *LinkingService) GetLinkInfo(minecraftUUID string) *models.LinkRecord {
	return s.links.FindByMinecraftUUID(minecraftUUID)
}

func (s *LinkingService) GetLinkedAccounts(discordID string) []models.LinkRecord {
	return s.links.FindByDiscordID(discordID)
}

func (s *LinkingService) GetAccountCount(discordID string) int {
	return s.links.CountByDiscordID(discordID)
}

func (s *LinkingService) GetPendingCode(minecraftUUID string) *models.VerificationCode {
	return s.codes.FindPending(minecraftUUID)
}

func (s *LinkingService) CanLinkMore(discordID string) bool {
	return s.links.CountByDiscordID(discordID) < s.maxAccounts
}

func (s *LinkingService) RemainingSlots(discordID string) int {
	remaining := s.maxAccounts - s.links.CountByDiscordID(discordID)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (s *LinkingService) MaxAccounts() int {
	return s.maxAccounts
}

// IssueCode generates a fresh verification code for an unlinked player.
// Expired rows are swept first, then random candidates are probed
// against every physically stored code (stale rows included) until a
// free one is found or the attempt budget runs out. A previously
// pending code for the same player is discarded so only the newest
// issued code stays redeemable.
func (s *LinkingService) IssueCode(minecraftUUID, minecraftName string, expiryMinutes int) (string, error) {
	s.codes.CleanExpired()

	code := ""
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		candidate, err := s.genCode(s.codeLength)
		if err != nil {
			return "", fmt.Errorf("failed to generate code: %w", err)
		}
		if !s.codes.Exists(candidate) {
			code = candidate
			break
		}
	}
	if code == "" {
		s.log.Warn("code issuance exhausted %d attempts, code space nearly full", maxCodeAttempts)
		return "", ErrCodeSpaceExhausted
	}

	s.codes.DeleteByMinecraftUUID(minecraftUUID)

	vc := models.NewVerificationCode(code, minecraftUUID, minecraftName,
		time.Duration(expiryMinutes)*time.Minute, s.now())
	if !s.codes.Create(vc) {
		return "", ErrCodeNotStored
	}

	s.log.Debug("issued code for %s (%s), expires at %s", minecraftName, minecraftUUID, vc.ExpiresAt)
	return code, nil
}

// Redeem exchanges a submitted code plus a Discord identity for a link
// record. The checks run strictly in order: code format, code validity,
// target account not already linked, submitter under the account limit.
// The consumed code is deleted after the link commits; if that deletion
// fails the link still stands and the stray row is swept later.
func (s *LinkingService) Redeem(code, discordID, discordName string) RedeemResult {
	if !s.isWellFormed(code) {
		return RedeemResult{Status: RejectMalformedCode}
	}

	vc := s.codes.FindValid(code)
	if vc == nil {
		return RedeemResult{Status: RejectInvalidOrExpired}
	}

	unlock := s.lockUUID(vc.MinecraftUUID)
	defer unlock()

	// Re-read under the lock: a concurrent redemption of the same code
	// may have consumed it between the peek above and here.
	vc = s.codes.FindValid(code)
	if vc == nil {
		return RedeemResult{Status: RejectInvalidOrExpired}
	}

	if s.links.IsLinked(vc.MinecraftUUID) {
		return RedeemResult{Status: RejectAlreadyLinked}
	}

	count := s.links.CountByDiscordID(discordID)
	if count >= s.maxAccounts {
		return RedeemResult{Status: RejectAccountLimit, LinkedCount: count}
	}

	link := models.LinkRecord{
		MinecraftUUID: vc.MinecraftUUID,
		MinecraftName: vc.MinecraftName,
		DiscordID:     discordID,
		DiscordName:   discordName,
		LinkedAt:      s.now(),
	}
	if !s.links.Create(link) {
		return RedeemResult{Status: RejectPersistenceFailure}
	}

	if !s.codes.Delete(code) {
		s.log.Warn("failed to delete consumed code %s, it will be swept on expiry", code)
	}

	s.log.Info("linked %s (%s) to Discord %s (%s)",
		link.MinecraftName, link.MinecraftUUID, link.DiscordName, link.DiscordID)
	return RedeemResult{Status: RedeemSuccess, Link: &link, LinkedCount: count + 1}
}

// Unlink removes the link record for a Minecraft account. A pending
// verification code for the same account is left to expire on its own.
func (s *LinkingService) Unlink(minecraftUUID string) bool {
	return s.links.Delete(minecraftUUID)
}

// UnlinkAllForDiscord removes every link owned by a Discord account,
// returning how many were deleted.
func (s *LinkingService) UnlinkAllForDiscord(discordID string) int {
	return s.links.DeleteByDiscordID(discordID)
}

func (s *LinkingService) isWellFormed(code string) bool {
	if len(code) != s.codeLength {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (s *LinkingService) lockUUID(minecraftUUID string) func() {
	v, _ := s.locks.LoadOrStore(minecraftUUID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// generateNumericCode draws uniformly from the fixed-width decimal
// space, leading zeros included: for length 4 that is "0000".."9999".
func generateNumericCode(length int) (string, error) {
	space := big.NewInt(1)
	for i := 0; i < length; i++ {
		space.Mul(space, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, space)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", length, n), nil
}
