// Command esrup batch-upscales image libraries laid out as
// Root/Studio/Model/Set trees by shelling out to the Real-ESRGAN inference
// script. It enumerates jobs deterministically, reports skipped sets and
// files instead of aborting, and runs jobs sequentially.
package main
