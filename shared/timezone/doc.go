// Package timezone holds the application timezone used for audit timestamps
// (receipt creation times, notice expiry instants reported to clients).
//
// Call Setup once at start-up with an IANA name such as "UTC" or "Asia/Jakarta";
// until then every helper falls back to UTC.
//
// Calendar days chosen by users are never converted through this package: a
// booking date is a civil date and carries no zone.
package timezone
