// Receipt importer: scans (and optionally watches) a drop directory of
// receipt images, OCRs an amount out of each and records it as an expense for
// one account. Safe to re-run: files already imported for the account are
// skipped by name.
//
// Usage:
//
//	go run ./process/cmd_receipt_importer -email user@example.com -dir ./drop [-watch] [-workers 4]
package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"finbud/models"
	"finbud/pkg/ledger"
	"finbud/pkg/ocr"
)

var db *gorm.DB

var verbose bool

func main() {
	var (
		dir     = flag.String("dir", "", "directory of receipt images (default RECEIPT_WATCH env)")
		email   = flag.String("email", "", "account to attribute expenses to")
		workers = flag.Int("workers", 4, "parallel OCR workers")
		watch   = flag.Bool("watch", false, "keep watching the directory for new files")
	)
	flag.BoolVar(&verbose, "v", false, "verbose logging")
	flag.Parse()

	_ = godotenv.Load()
	if *dir == "" {
		*dir = os.Getenv("RECEIPT_WATCH")
	}
	if *dir == "" || *email == "" {
		flag.Usage()
		os.Exit(2)
	}

	dsn := os.Getenv("DB_DSN")
	if strings.TrimSpace(dsn) == "" {
		log.Fatal("DB_DSN not set in environment")
	}
	var err error
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}

	var user models.User
	if err := db.Where("email = ?", strings.ToLower(*email)).First(&user).Error; err != nil {
		log.Fatalf("account %s not found: %v", *email, err)
	}

	runWorkerPool(*dir, user, *workers, listImageFiles(*dir), nil)
	if *watch {
		if err := watchDirectory(*dir, user, *workers); err != nil {
			log.Fatalf("watch failed: %v", err)
		}
	}
}

func listImageFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("read dir %s: %v", dir, err)
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !isSupportedExt(e.Name()) {
			continue
		}
		out = append(out, e.Name())
	}
	return out
}

func isSupportedExt(name string) bool {
	// ignore OCR-generated temp files to avoid recursive processing
	if strings.Contains(name, ".ocr.") {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return true
	}
	return false
}

// watchDirectory blocks, feeding debounced create events into a worker pool.
func watchDirectory(dir string, user models.User, workers int) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return err
	}
	log.Printf("Watching %s (debounced) ...", dir)

	fileCh := make(chan string, 256)
	go func() {
		// debounce map of pending files; a file is stable once it stops
		// producing events for 300ms
		pending := map[string]time.Time{}
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					close(fileCh)
					return
				}
				if ev.Op&fsnotify.Create == fsnotify.Create {
					name := filepath.Base(ev.Name)
					if !isSupportedExt(name) {
						continue
					}
					pending[name] = time.Now()
				}
			case <-ticker.C:
				now := time.Now()
				for name, t := range pending {
					if now.Sub(t) > 300*time.Millisecond {
						fileCh <- name
						delete(pending, name)
					}
				}
			case err, ok := <-w.Errors:
				if !ok {
					close(fileCh)
					return
				}
				log.Printf("watch error: %v", err)
			}
		}
	}()

	runWorkerPool(dir, user, workers, nil, fileCh)
	return nil
}

// runWorkerPool processes the initial file list and then any names arriving
// on extra, with workers goroutines sharing one channel.
func runWorkerPool(dir string, user models.User, workers int, initial []string, extra <-chan string) {
	if workers < 1 {
		workers = 1
	}
	fileCh := make(chan string, 1024)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range fileCh {
				if err := importReceipt(dir, name, user); err != nil {
					log.Printf("import %s: %v", name, err)
				}
			}
		}()
	}
	for _, name := range initial {
		fileCh <- name
	}
	if extra != nil {
		for name := range extra {
			fileCh <- name
		}
	}
	close(fileCh)
	wg.Wait()
}

// importReceipt runs OCR on one file and records the upload + expense.
// Idempotent per (user, file name); an unreadable receipt gets a failed
// upload row instead of being dropped.
func importReceipt(dir, name string, user models.User) error {
	var existing models.Upload
	if err := db.Where("user_id = ? AND file_name = ?", user.ID, name).First(&existing).Error; err == nil {
		if verbose {
			log.Printf("skip %s: already imported (upload %d)", name, existing.ID)
		}
		return nil
	}

	full := filepath.Join(dir, name)
	up := models.Upload{UserID: user.ID, FileName: name, StorePath: full}
	amount, conf, raw, err := ocr.ExtractAmountFromImage(full)
	if err != nil || amount <= 0 {
		up.Failed = true
		up.FailedReason = "no amount detected"
		if err != nil && !errors.Is(err, ocr.ErrNoAmount) {
			up.FailedReason = err.Error()
		}
		return db.Create(&up).Error
	}
	if verbose {
		log.Printf("%s: amount=%.2f conf=%.2f raw=%q", name, amount, conf, raw)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		e := models.Expense{
			UserID:        user.ID,
			Amount:        amount,
			Category:      ledger.Other,
			ModeOfPayment: models.PaymentCash,
			Date:          time.Now(),
			Description:   "receipt " + name,
		}
		if err := tx.Create(&e).Error; err != nil {
			return err
		}
		up.ExpenseID = &e.ID
		return tx.Create(&up).Error
	})
}
