package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"

	"todo/internal/service"
)

const (
	// fieldCount is the number of fields on every save file line:
	// id,description,due_date,completed
	fieldCount = 4

	completedTrue  = "True"
	completedFalse = "False"

	filePerm  = 0o644
	tmpSuffix = ".tmp"
)

// Save implements service.Store.
// The file is written beside path and renamed into place, so a failed
// write leaves any previous file intact.
func (s *Store) Save(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.dirPerm != 0 {
		if err := s.fs.MkdirAll(filepath.Dir(path), s.dirPerm); err != nil {
			return fmt.Errorf("%w: create %s: %v", service.ErrIO, filepath.Dir(path), err)
		}
	}

	data := encodeTasks(s.tasks)
	tmp := path + tmpSuffix
	if err := afero.WriteFile(s.fs, tmp, data, filePerm); err != nil {
		return fmt.Errorf("%w: write %s: %v", service.ErrIO, tmp, err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("%w: rename %s: %v", service.ErrIO, path, err)
	}

	s.logger.Debug("saved tasks", "path", path, "count", len(s.tasks))
	return nil
}

// Load implements service.Store.
// Lines without exactly four fields are skipped. Any other malformed line
// fails the whole load and leaves the store untouched.
func (s *Store) Load(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, service.ErrNotFound)
		}
		return fmt.Errorf("%w: read %s: %v", service.ErrIO, path, err)
	}

	tasks, err := s.decodeTasks(data, s.now().Location())
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	s.tasks = tasks
	for _, t := range tasks {
		// only ever raise the counter
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}

	s.logger.Debug("loaded tasks", "path", path, "count", len(tasks), "next_id", s.nextID)
	return nil
}

func encodeTasks(tasks []service.Task) []byte {
	var buf bytes.Buffer
	for _, t := range tasks {
		completed := completedFalse
		if t.Completed {
			completed = completedTrue
		}
		buf.WriteString(strings.Join([]string{
			strconv.Itoa(t.ID),
			t.Description,
			t.Due(),
			completed,
		}, fieldSeparator))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func (s *Store) decodeTasks(data []byte, loc *time.Location) ([]service.Task, error) {
	var tasks []service.Task
	seen := make(map[int]bool)

	// the whole file is in memory, so lines of any length are split in place
	for i, raw := range bytes.Split(data, []byte("\n")) {
		lineNum := i + 1
		line := strings.TrimRight(string(raw), "\r")

		fields := strings.Split(line, fieldSeparator)
		if len(fields) != fieldCount {
			if line != "" {
				s.logger.Debug("skipping line", "line", lineNum, "fields", len(fields))
			}
			continue
		}

		task, err := decodeTask(lineNum, fields, loc)
		if err != nil {
			return nil, err
		}
		if seen[task.ID] {
			return nil, &service.ParseError{Line: lineNum, Field: "id", Value: fields[0], Err: errors.New("duplicate id")}
		}
		seen[task.ID] = true
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func decodeTask(lineNum int, fields []string, loc *time.Location) (service.Task, error) {
	id, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil || id < 1 {
		return service.Task{}, &service.ParseError{Line: lineNum, Field: "id", Value: fields[0]}
	}

	due, err := time.ParseInLocation(service.DateLayout, strings.TrimSpace(fields[2]), loc)
	if err != nil {
		return service.Task{}, &service.ParseError{Line: lineNum, Field: "due date", Value: fields[2]}
	}

	completed, err := strconv.ParseBool(strings.TrimSpace(fields[3]))
	if err != nil {
		return service.Task{}, &service.ParseError{Line: lineNum, Field: "completed", Value: fields[3]}
	}

	task := service.Task{
		ID:          id,
		Description: strings.TrimSpace(fields[1]),
		DueDate:     due,
		Completed:   completed,
	}
	if err := validate.Struct(task); err != nil {
		return service.Task{}, &service.ParseError{Line: lineNum, Field: "description", Value: fields[1]}
	}
	return task, nil
}
