package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"photo-manifest/internal/config"
	"photo-manifest/internal/files"
	"photo-manifest/internal/manifest"
	"photo-manifest/internal/secrets"
)

func runUI(uiLog *uiLogger) error {
	if err := uiStartupGuard(); err != nil {
		uiStartupAlert(err)
		return err
	}
	log.SetOutput(newLogWatcher(os.Stderr, handleOpenGLFailure))
	uiLog.Info("settings window start")

	a := app.New()
	w := a.NewWindow("Photo Manifest")

	cfg, err := config.LoadOrDefault()
	status := widget.NewLabel("")
	status.Wrapping = fyne.TextWrapWord
	if err != nil {
		status.SetText("Error loading config: " + err.Error())
		uiLog.Error("load config failed", err)
	}

	apiListenEntry := widget.NewEntry()
	apiListenEntry.SetText(cfg.APIListen)

	debugCheck := widget.NewCheck("Debug mode", nil)
	debugCheck.SetChecked(cfg.Debug)

	logFormatSelect := widget.NewSelect(config.LogFormatOptions(), func(string) {})
	logFormatSelect.SetSelected(string(cfg.LogFormat))

	manifestPathEntry := widget.NewEntry()
	manifestPathEntry.SetText(cfg.ManifestPath)

	publicBaseEntry := widget.NewEntry()
	publicBaseEntry.SetPlaceHolder("Derived from each request")
	publicBaseEntry.SetText(cfg.PublicBaseURL)

	trustProxyCheck := widget.NewCheck("Trust X-Forwarded-Proto/Host", nil)
	trustProxyCheck.SetChecked(cfg.TrustProxyHeaders)

	allowOriginEntry := widget.NewEntry()
	allowOriginEntry.SetPlaceHolder("Empty disables CORS")
	allowOriginEntry.SetText(cfg.AllowOrigin)

	foldersEntry := widget.NewEntry()
	foldersEntry.SetText(strings.Join(cfg.ManifestOptions().Folders, ", "))

	extensionsEntry := widget.NewEntry()
	extensionsEntry.SetText(strings.Join(cfg.ManifestOptions().Extensions, ", "))

	rootEntry := widget.NewEntry()
	rootEntry.SetText(cfg.Storage.Root)
	rootBrowseBtn := widget.NewButton("Browse", func() {
		dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil {
				status.SetText("Folder selection error: " + err.Error())
				return
			}
			if uri == nil {
				return
			}
			rootEntry.SetText(uri.Path())
		}, w)
	})
	rootBox := container.NewVBox(
		widget.NewLabel("Photo root folder"),
		container.NewBorder(nil, nil, nil, rootBrowseBtn, rootEntry),
	)

	s3EndpointEntry := widget.NewEntry()
	s3EndpointEntry.SetText(cfg.Storage.S3.Endpoint)
	s3BucketEntry := widget.NewEntry()
	s3BucketEntry.SetText(cfg.Storage.S3.Bucket)
	s3PrefixEntry := widget.NewEntry()
	s3PrefixEntry.SetText(cfg.Storage.S3.Prefix)
	s3RegionEntry := widget.NewEntry()
	s3RegionEntry.SetText(cfg.Storage.S3.Region)
	s3AccessKeyEntry := widget.NewEntry()
	s3AccessKeyEntry.SetText(cfg.Storage.S3.AccessKeyID)
	s3SecretEntry := widget.NewPasswordEntry()
	s3SecretEntry.SetPlaceHolder("Leave blank to keep existing")
	s3SSLCheck := widget.NewCheck("Use TLS", nil)
	s3SSLCheck.SetChecked(cfg.Storage.S3.UseSSL)

	s3Box := container.NewVBox(
		widget.NewLabel("S3 endpoint (host:port)"),
		s3EndpointEntry,
		widget.NewLabel("Bucket"),
		s3BucketEntry,
		widget.NewLabel("Prefix"),
		s3PrefixEntry,
		widget.NewLabel("Region"),
		s3RegionEntry,
		widget.NewLabel("Access key ID"),
		s3AccessKeyEntry,
		widget.NewLabel("Secret access key"),
		s3SecretEntry,
		s3SSLCheck,
	)

	backendSelect := widget.NewSelect(config.StorageBackendOptions(), func(string) {})
	updateBackendVisibility := func(backend config.StorageBackend) {
		if backend == config.StorageS3 {
			rootBox.Hide()
			s3Box.Show()
			return
		}
		s3Box.Hide()
		rootBox.Show()
	}
	backendSelect.OnChanged = func(selected string) {
		updateBackendVisibility(config.StorageBackend(selected))
	}
	backend := cfg.Storage.Backend
	if backend == "" {
		backend = config.StorageLocal
	}
	backendSelect.SetSelected(string(backend))
	updateBackendVisibility(backend)

	collect := func() config.Config {
		tmp := cfg
		tmp.APIListen = strings.TrimSpace(apiListenEntry.Text)
		tmp.Debug = debugCheck.Checked
		tmp.LogFormat = config.LogFormat(logFormatSelect.Selected)
		tmp.ManifestPath = strings.TrimSpace(manifestPathEntry.Text)
		tmp.PublicBaseURL = strings.TrimSpace(publicBaseEntry.Text)
		tmp.TrustProxyHeaders = trustProxyCheck.Checked
		tmp.AllowOrigin = strings.TrimSpace(allowOriginEntry.Text)
		tmp.Folders = splitList(foldersEntry.Text)
		tmp.ImageExtensions = splitList(extensionsEntry.Text)
		tmp.Storage.Backend = config.StorageBackend(backendSelect.Selected)
		tmp.Storage.Root = strings.TrimSpace(rootEntry.Text)
		tmp.Storage.S3 = config.S3Config{
			Endpoint:    strings.TrimSpace(s3EndpointEntry.Text),
			Bucket:      strings.TrimSpace(s3BucketEntry.Text),
			Prefix:      strings.TrimSpace(s3PrefixEntry.Text),
			Region:      strings.TrimSpace(s3RegionEntry.Text),
			AccessKeyID: strings.TrimSpace(s3AccessKeyEntry.Text),
			UseSSL:      s3SSLCheck.Checked,
		}
		return tmp
	}

	saveSecret := func() bool {
		if s3SecretEntry.Text == "" {
			return true
		}
		if err := secrets.Set(files.S3SecretKey, []byte(s3SecretEntry.Text)); err != nil {
			status.SetText("Failed to save S3 secret key: " + err.Error())
			uiLog.Error("save s3 secret failed", err)
			return false
		}
		s3SecretEntry.SetText("")
		return true
	}

	testBtn := widget.NewButton("Test scan", func() {
		tmp := collect()
		if err := tmp.Validate(); err != nil {
			status.SetText("Invalid settings: " + err.Error())
			return
		}
		if !saveSecret() {
			return
		}

		status.SetText("Scanning...")
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		store, err := files.New(ctx, tmp.Storage)
		if err != nil {
			status.SetText("Storage unavailable: " + err.Error())
			return
		}
		res, err := manifest.Build(ctx, store, tmp.ManifestOptions(), "/")
		if err != nil {
			status.SetText("Scan failed: " + err.Error())
			uiLog.Error("test scan failed", err)
			return
		}
		status.SetText(res.Message())
		uiLog.Info("test scan", "outcome", res.Outcome.String(), "photos", res.Count())
	})

	saveBtn := widget.NewButton("Save", func() {
		next := collect()
		if err := next.Validate(); err != nil {
			status.SetText("Invalid settings: " + err.Error())
			return
		}
		if !saveSecret() {
			return
		}
		if err := config.Save(next); err != nil {
			status.SetText("Error saving config: " + err.Error())
			uiLog.Error("save config failed", err)
			return
		}
		cfg = next
		status.SetText("Saved. Restart photo-manifestd to apply.")
		uiLog.Info("config saved", "listen", cfg.APIListen, "backend", cfg.Storage.Backend)
	})

	content := container.NewVBox(
		widget.NewLabel("API Listen (host:port)"),
		apiListenEntry,
		debugCheck,
		widget.NewLabel("Log format"),
		logFormatSelect,

		widget.NewSeparator(),
		widget.NewLabel("Manifest path"),
		manifestPathEntry,
		widget.NewLabel("Public base URL"),
		publicBaseEntry,
		trustProxyCheck,
		widget.NewLabel("Allowed origin"),
		allowOriginEntry,

		widget.NewSeparator(),
		widget.NewLabel("Folders (reference order)"),
		foldersEntry,
		widget.NewLabel("Image extensions"),
		extensionsEntry,

		widget.NewSeparator(),
		widget.NewLabel("Storage"),
		backendSelect,
		rootBox,
		s3Box,

		container.NewHBox(testBtn, saveBtn),
		status,
	)

	w.SetContent(container.NewVScroll(content))
	w.Resize(fyne.NewSize(520, 690))
	w.SetFixedSize(false)
	w.ShowAndRun()
	return nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
