package rmbgsvc

import "testing"

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"cat.png", "cat.png"},
		{"my photo.jpg", "my_photo.jpg"},
		{"../../etc/passwd.png", "etc_passwd.png"},
		{`C:\Users\me\pic.jpeg`, "C_Users_me_pic.jpeg"},
		{"Café.png", "Cafe.png"},
		{"<script>.png", "script.png"},
		{".hidden.png", "hidden.png"},
		{"日本.png", "png"},
		{"///", "image"},
		{"", "image"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SanitizeFilename(tt.in); got != tt.want {
				t.Fatalf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDownloadName(t *testing.T) {
	if got := DownloadName("cat.png"); got != "cat.png_rmbg.png" {
		t.Fatalf("DownloadName = %q", got)
	}
	if got := DownloadName("a/b c.JPG"); got != "a_b_c.JPG_rmbg.png" {
		t.Fatalf("DownloadName = %q", got)
	}
}
