// Package main provides the entry point of botpanel.
// It runs a Discord bot answering prefixed text commands next to a Fiber
// based JSON API used by the dashboard to manage the bot settings, the
// command catalog and to read command logs and analytics. The application
// uses gorm for persistence on SQLite, MySQL or PostgreSQL.
package main
