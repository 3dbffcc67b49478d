package history

import "context"

// SetSchemaVersionForTests overwrites the recorded schema version.
func SetSchemaVersionForTests(s *Store, version int) error {
	_, err := s.db.ExecContext(context.Background(), "UPDATE schema_version SET version = ?", version)
	return err
}
