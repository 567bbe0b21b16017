package models

import "time"

type Commit struct {
	Hash      string
	ShortHash string
	Author    string
	Email     string
	Date      time.Time
	Message   string   // first line of the commit message
	Parents   []string // parent hashes, first parent first
}
