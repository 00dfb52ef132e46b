package buildlog

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- One row per generated page. last_modified only advances when the
-- content hash changes, which is what sitemap <lastmod> wants.
CREATE TABLE IF NOT EXISTS pages (
    url TEXT PRIMARY KEY,
    title TEXT,
    content_hash TEXT NOT NULL,
    first_built TEXT NOT NULL,
    last_modified TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_pages_modified ON pages(last_modified);
`
