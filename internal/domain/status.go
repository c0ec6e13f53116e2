package domain

// Status is the coarse compliance status shown for a site.
type Status string

const (
    StatusApproved  Status = "approved"
    StatusDenied    Status = "denied"
    StatusStaffOnly Status = "staff_only"
    StatusPending   Status = "pending"
    StatusUnlisted  Status = "unlisted"
)

// Raw status strings as they appear in the remote list.
const (
    tlRejected  = "Rejected"
    tlApproved  = "Approved"
    dpaDenied   = "Denied"
    dpaReceived = "Received"
    notRequired = "Not Required"
)

// DeriveStatus maps an entry's raw T&L and DPA fields to a Status. Rules are
// evaluated in strict precedence; the first that applies wins. Unrecognized
// or missing strings fall through to pending.
func DeriveStatus(entry *ListEntry) Status {
    switch {
    case entry == nil:
        return StatusUnlisted
    case entry.CurrentTLStatus == tlRejected:
        return StatusDenied
    case entry.CurrentDPAStatus == dpaDenied:
        return StatusStaffOnly
    case (entry.CurrentTLStatus == tlApproved || entry.CurrentTLStatus == notRequired) &&
        (entry.CurrentDPAStatus == dpaReceived || entry.CurrentDPAStatus == notRequired):
        return StatusApproved
    default:
        return StatusPending
    }
}
