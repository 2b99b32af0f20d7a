package gate

import "testing"

func TestDescriptorTableInstallOrdering(t *testing.T) {
	reset := func() {
		gdtActive, idtActive = false, false
	}
	defer reset()

	t.Run("idt requires gdt", func(t *testing.T) {
		reset()

		if err := InstallIDT(); err != ErrMissingGDT {
			t.Fatalf("expected ErrMissingGDT; got %v", err)
		}
		if IDTInstalled() {
			t.Fatal("expected a failed install to leave the IDT inactive")
		}
	})

	t.Run("install sequence", func(t *testing.T) {
		reset()

		if err := InstallGDT(); err != nil {
			t.Fatal(err)
		}
		if !GDTInstalled() {
			t.Fatal("expected GDT to be active after install")
		}

		if err := InstallIDT(); err != nil {
			t.Fatal(err)
		}
		if !IDTInstalled() {
			t.Fatal("expected IDT to be active after install")
		}
	})

	t.Run("double install detected", func(t *testing.T) {
		reset()

		InstallGDT()
		if err := InstallGDT(); err != ErrAlreadyInstalled {
			t.Fatalf("expected ErrAlreadyInstalled for second GDT install; got %v", err)
		}

		InstallIDT()
		if err := InstallIDT(); err != ErrAlreadyInstalled {
			t.Fatalf("expected ErrAlreadyInstalled for second IDT install; got %v", err)
		}
	})
}
