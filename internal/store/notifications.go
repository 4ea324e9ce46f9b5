package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dailyflow/dailyflow/internal/model"
)

func (s *Store) AddNotification(title, message string, typ model.NotificationType, action string) (*model.Notification, error) {
	if title == "" {
		return nil, fmt.Errorf("notification title is required")
	}
	if !typ.Valid() {
		return nil, fmt.Errorf("invalid notification type %q", typ)
	}

	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO notifications (id, title, message, type, action, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, title, message, string(typ), action, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}
	return s.getNotification(id)
}

func (s *Store) getNotification(id string) (*model.Notification, error) {
	n := &model.Notification{}
	var typ, createdAt string
	var read int
	err := s.db.QueryRow(
		`SELECT id, title, message, type, action, read, created_at
		 FROM notifications WHERE id = ?`, id,
	).Scan(&n.ID, &n.Title, &n.Message, &typ, &n.Action, &read, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("get notification %s: %w", id, err)
	}
	n.Type, err = model.ParseNotificationType(typ)
	if err != nil {
		return nil, fmt.Errorf("notification %s: %w", id, err)
	}
	n.Read = read == 1
	n.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return n, nil
}

// ListNotifications returns every notification newest first.
func (s *Store) ListNotifications() ([]model.Notification, error) {
	rows, err := s.db.Query(
		`SELECT id, title, message, type, action, read, created_at
		 FROM notifications ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		var typ, createdAt string
		var read int
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &typ, &n.Action, &read, &createdAt); err != nil {
			return nil, err
		}
		n.Type, err = model.ParseNotificationType(typ)
		if err != nil {
			return nil, fmt.Errorf("notification %s: %w", n.ID, err)
		}
		n.Read = read == 1
		n.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (s *Store) MarkNotificationRead(id string) error {
	res, err := s.db.Exec(`UPDATE notifications SET read = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark read %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("notification not found: %s", id)
	}
	return nil
}

func (s *Store) MarkAllNotificationsRead() error {
	_, err := s.db.Exec(`UPDATE notifications SET read = 1 WHERE read = 0`)
	return err
}

func (s *Store) UnreadCount() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM notifications WHERE read = 0`).Scan(&n)
	return n, err
}

func (s *Store) DeleteNotification(id string) error {
	_, err := s.db.Exec(`DELETE FROM notifications WHERE id = ?`, id)
	return err
}

// ClearNotifications removes all read notifications.
func (s *Store) ClearNotifications() error {
	_, err := s.db.Exec(`DELETE FROM notifications WHERE read = 1`)
	return err
}
