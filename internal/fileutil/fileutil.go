// Package fileutil holds file permission modes shared by the command line
// and tests.
package fileutil

import "os"

// OwnerReadWrite is the file permission mode for records and schema
// documents written on behalf of the user (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// OwnerDirectory is the mode for directories created to hold them.
const OwnerDirectory os.FileMode = 0o700
