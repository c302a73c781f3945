package folio

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jmaretta/folio/content"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = sql.ErrNoRows

// ErrTitleRequired is returned when a post would be stored without a title.
var ErrTitleRequired = errors.New("title is required")

// Store wraps a SQLite database and provides CRUD operations for posts,
// contact messages, and uploaded images.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL for concurrent read/write, busy timeout so writers wait instead
	// of returning SQLITE_BUSY, synchronous=NORMAL is safe with WAL.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    id TEXT PRIMARY KEY,
    slug TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    content TEXT NOT NULL DEFAULT '',
    excerpt TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT '',
    cover_image TEXT NOT NULL DEFAULT '',
    published INTEGER NOT NULL DEFAULT 0,
    featured INTEGER NOT NULL DEFAULT 0,
    published_at TEXT,
    seo_title TEXT NOT NULL DEFAULT '',
    seo_description TEXT NOT NULL DEFAULT '',
    author TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS contact_messages (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    message TEXT NOT NULL,
    spam INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
`)
	return err
}

const postColumns = `id, slug, title, content, excerpt, tags, cover_image, published, featured, published_at, seo_title, seo_description, author, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (Post, error) {
	var p Post
	var published, featured int
	var publishedAt sql.NullString
	var createdAt, updatedAt string
	err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Content, &p.Excerpt, &p.Tags,
		&p.CoverImage, &published, &featured, &publishedAt,
		&p.SEOTitle, &p.SEODescription, &p.Author, &createdAt, &updatedAt)
	if err != nil {
		return Post{}, err
	}
	p.Published = published == 1
	p.Featured = featured == 1
	if publishedAt.Valid {
		p.PublishedAt = content.ParseDate(publishedAt.String)
	}
	p.CreatedAt = parseStoredTime(createdAt)
	p.UpdatedAt = parseStoredTime(updatedAt)
	return p, nil
}

func parseStoredTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// ListOptions filters and paginates post listings. The pointer filters are
// tri-state: nil means no filter.
type ListOptions struct {
	Published *bool
	Featured  *bool
	Tag       string
	Page      int // 1-based; 0 means no pagination
	Limit     int
}

func (o ListOptions) clauses() (string, []any) {
	var conds []string
	var args []any
	if o.Published != nil {
		conds = append(conds, "published = ?")
		args = append(args, boolToInt(*o.Published))
	}
	if o.Featured != nil {
		conds = append(conds, "featured = ?")
		args = append(args, boolToInt(*o.Featured))
	}
	if o.Tag != "" {
		conds = append(conds, "instr(lower(tags), ?) > 0")
		args = append(args, strings.ToLower(strings.TrimSpace(o.Tag)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}
	return where, args
}

// ListPosts returns posts ordered by publish date (falling back to creation
// date) descending.
func (s *Store) ListPosts(opts ListOptions) ([]Post, error) {
	where, args := opts.clauses()
	query := `SELECT ` + postColumns + ` FROM posts` + where +
		` ORDER BY COALESCE(published_at, created_at) DESC`
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
		if opts.Page > 1 {
			query += " OFFSET ?"
			args = append(args, (opts.Page-1)*opts.Limit)
		}
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// CountPosts returns the number of posts matching opts, ignoring pagination.
func (s *Store) CountPosts(opts ListOptions) (int, error) {
	where, args := opts.clauses()
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM posts`+where, args...).Scan(&n)
	return n, err
}

// GetPost returns a single published post by slug.
func (s *Store) GetPost(slug string) (Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ? AND published = 1`, slug)
	return scanPost(row)
}

// GetPostAny returns a post by slug or id regardless of published status.
func (s *Store) GetPostAny(slugOrID string) (Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ? OR id = ?`, slugOrID, slugOrID)
	return scanPost(row)
}

// ListTags returns a sorted, deduplicated slice of all tags from published
// posts.
func (s *Store) ListTags() ([]string, error) {
	rows, err := s.db.Query(`SELECT tags FROM posts WHERE published = 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(map[string]struct{})
	for rows.Next() {
		var tags string
		if err := rows.Scan(&tags); err != nil {
			return nil, err
		}
		for _, t := range ParseTags(tags) {
			set[strings.ToLower(t)] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	var result []string
	for t := range set {
		result = append(result, t)
	}
	sort.Strings(result)
	return result, nil
}

// CreatePost builds a new post from the request fields, running the content
// through the frontmatter pipeline, and persists it. A title must survive
// the merge (supplied directly or via frontmatter).
func (s *Store) CreatePost(upd content.Update) (Post, error) {
	// Stored times are whole-second RFC3339; truncate up front so the
	// returned post matches what a later read scans back.
	now := time.Now().UTC().Truncate(time.Second)
	stored := Post{
		ID:        uuid.NewString(),
		CreatedAt: now,
	}
	p := buildPost(stored, upd, now)
	if strings.TrimSpace(p.Title) == "" {
		return Post{}, ErrTitleRequired
	}

	_, err := s.db.Exec(`INSERT INTO posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Slug, p.Title, p.Content, p.Excerpt, p.Tags, p.CoverImage,
		boolToInt(p.Published), boolToInt(p.Featured), formatTimePtr(p.PublishedAt),
		p.SEOTitle, p.SEODescription, p.Author, formatTime(p.CreatedAt), formatTime(p.UpdatedAt))
	if err != nil {
		return Post{}, fmt.Errorf("insert post: %w", err)
	}
	return p, nil
}

// UpdatePost applies a partial update to the post identified by slug or id.
// Only supplied fields change; the content runs through the frontmatter
// pipeline first.
func (s *Store) UpdatePost(slugOrID string, upd content.Update) (Post, error) {
	stored, err := s.GetPostAny(slugOrID)
	if err != nil {
		return Post{}, err
	}
	p := buildPost(stored, upd, time.Now().UTC().Truncate(time.Second))
	if strings.TrimSpace(p.Title) == "" {
		return Post{}, ErrTitleRequired
	}

	_, err = s.db.Exec(`UPDATE posts SET slug = ?, title = ?, content = ?, excerpt = ?, tags = ?,
		cover_image = ?, published = ?, featured = ?, published_at = ?,
		seo_title = ?, seo_description = ?, author = ?, updated_at = ? WHERE id = ?`,
		p.Slug, p.Title, p.Content, p.Excerpt, p.Tags, p.CoverImage,
		boolToInt(p.Published), boolToInt(p.Featured), formatTimePtr(p.PublishedAt),
		p.SEOTitle, p.SEODescription, p.Author, formatTime(p.UpdatedAt), p.ID)
	if err != nil {
		return Post{}, fmt.Errorf("update post: %w", err)
	}
	return p, nil
}

// DeletePost removes a post by slug or id. Deleting a missing post returns
// ErrNotFound.
func (s *Store) DeletePost(slugOrID string) error {
	res, err := s.db.Exec(`DELETE FROM posts WHERE slug = ? OR id = ?`, slugOrID, slugOrID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveContactMessage persists a contact form submission.
func (s *Store) SaveContactMessage(m ContactMessage) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(`INSERT INTO contact_messages (id, name, email, message, spam, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Email, m.Message, boolToInt(m.Spam), formatTime(m.CreatedAt))
	return err
}

// SaveImage records an uploaded image's metadata.
func (s *Store) SaveImage(img Image) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO images (filename, original_name, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// ListImages returns uploaded images, newest first.
func (s *Store) ListImages() ([]Image, error) {
	rows, err := s.db.Query(`SELECT filename, original_name, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// DeleteImage removes an image's metadata by filename.
func (s *Store) DeleteImage(filename string) error {
	_, err := s.db.Exec(`DELETE FROM images WHERE filename = ?`, filename)
	return err
}
