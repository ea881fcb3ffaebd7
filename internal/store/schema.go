package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS feed_fetches (
    url        TEXT PRIMARY KEY,
    fetched_at TEXT NOT NULL,
    error      TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS feed_items (
    url       TEXT NOT NULL,
    position  INTEGER NOT NULL,
    title     TEXT NOT NULL,
    link      TEXT NOT NULL,
    published TEXT NOT NULL,
    PRIMARY KEY (url, position),
    FOREIGN KEY (url) REFERENCES feed_fetches(url) ON DELETE CASCADE
);
`
