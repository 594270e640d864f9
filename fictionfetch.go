// Package fictionfetch extracts chapter listings and chapter content from
// Royal Road fiction pages. It parses the chapter array embedded in listing
// pages, fetches individual chapters politely (randomized delays, bounded
// backoff on rate limiting), and converts each chapter body into plain text,
// escaped bracket-bolded text, and a sanitized HTML fragment.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, sqlite/).
package fictionfetch
