package breakdown

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/renteloshaik/rentelo-breakdown-assist/internal/models"
)

// idStampLayout renders the creation minute as 12 fixed-width digits, so IDs
// sort in creation order.
const idStampLayout = "200601021504"

// NextID returns a new breakdown ID of the form BD-<YYYYMMDDHHmm>-<XX>, with
// the minute taken in IST and XX two random uppercase letters. The random
// suffix needs no shared counter, so independent processes can generate IDs
// concurrently; a same-minute same-suffix collision is an accepted risk under
// the store's last-writer-wins model.
func NextID(now time.Time) string {
	return fmt.Sprintf("BD-%s-%s", now.In(models.IST).Format(idStampLayout), randomSuffix())
}

func randomSuffix() string {
	b := make([]byte, 2)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing is effectively unreachable; fall back to a
		// fixed suffix rather than panicking in the middle of data entry.
		return "ZZ"
	}
	return string([]byte{'A' + b[0]%26, 'A' + b[1]%26})
}
