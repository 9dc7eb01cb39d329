// Package services implements the RapidBlood use cases on top of the record
// collections: authentication, the user directory, donor search, blood
// requests, chat threads and admin housekeeping.
//
// Every operation that needs to know who is acting takes an explicit
// *session.Session; nothing reads a process-wide current user. Errors wrap
// the sentinels in internal/common and are meant to be matched with
// errors.Is by the presentation layer.
package services
