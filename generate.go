//go:generate gomarkdoc -e -f github -o README.md . --repository.url https://github.com/aeroatlas/spotmerge --repository.default-branch master --repository.path /

// Package spotmerge reconciles drone-spot image folders with the
// enrichment records scraped for them.
package spotmerge
