//go:build db2

package schemadoc

// The DB2 driver links against the IBM CLI driver through cgo, so it is only
// compiled in with -tags db2.
import _ "github.com/ibmdb/go_ibm_db"
