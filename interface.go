package orgdir

// Organize plans and executes a grouping of dir's files in one call, without
// confirmation. Intended for embedding; the shells drive App directly.
func Organize(dir, separator string, removePrefix bool) (Summary, error) {
	o := NewOrganizer(separator)
	plan, err := o.Plan(dir)
	if err != nil {
		return Summary{}, err
	}
	if plan.IsEmpty() {
		return Summary{}, &DirError{Op: "organize", Path: dir, Err: ErrNoFiles}
	}

	res := o.Execute(dir, plan, removePrefix, nil)
	return Summary{
		Moved:       res.Moved,
		Categories:  len(plan.Order),
		DirsCreated: res.DirsCreated,
		Errors:      res.Errors,
	}, nil
}

// ReverseDir scans dir's subdirectories and moves their files back up,
// optionally restoring the stripped prefixes.
func ReverseDir(dir, separator string, restorePrefix bool) (Summary, error) {
	o := NewOrganizer(separator)
	categories, subdirs, err := o.ScanSubdirs(dir)
	if err != nil {
		return Summary{}, err
	}
	if len(subdirs) == 0 {
		return Summary{}, &DirError{Op: "reverse", Path: dir, Err: ErrNoSubdirs}
	}
	if len(categories) == 0 {
		return Summary{}, &DirError{Op: "reverse", Path: dir, Err: ErrNoSubdirFiles}
	}

	res := o.Reverse(dir, categories, restorePrefix, nil)
	return Summary{
		Moved:       res.Moved,
		Categories:  len(categories),
		DirsRemoved: res.DirsRemoved,
		Errors:      res.Errors,
	}, nil
}

// Tree renders dir as a textual tree.
func Tree(dir string, opts TreeOptions) (string, error) {
	return RenderTree(dir, opts)
}
